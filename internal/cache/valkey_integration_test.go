//go:build integration

package cache_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/argus/internal/cache"
	"github.com/UnknownOlympus/argus/internal/elevation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestValkeyCache(t *testing.T) {
	ctx := t.Context()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "valkey/valkey:8-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	valkeyCache, err := cache.NewValkeyCache(endpoint)
	require.NoError(t, err)
	defer valkeyCache.Close()

	require.NoError(t, valkeyCache.Ping(ctx))

	t.Run("missing key", func(t *testing.T) {
		_, err := valkeyCache.Get(ctx, "elevation:missing")

		require.ErrorIs(t, err, elevation.ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, valkeyCache.Set(ctx, "elevation:1.00000:2.00000", []byte("117.5"), time.Minute))

		value, err := valkeyCache.Get(ctx, "elevation:1.00000:2.00000")

		require.NoError(t, err)
		assert.Equal(t, []byte("117.5"), value)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, valkeyCache.Set(ctx, "elevation:short", []byte("1"), time.Second))

		require.Eventually(t, func() bool {
			_, err := valkeyCache.Get(ctx, "elevation:short")
			return err != nil
		}, 5*time.Second, 100*time.Millisecond)
	})
}
