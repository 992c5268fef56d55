package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/argus/internal/elevation"
	"github.com/valkey-io/valkey-go"
)

// ValkeyCache stores elevation samples in Valkey (Redis-compatible).
type ValkeyCache struct {
	client valkey.Client
}

// NewValkeyCache creates a new Valkey cache client.
func NewValkeyCache(addr string) (*ValkeyCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	return &ValkeyCache{client: client}, nil
}

// Get retrieves a value by key. A missing key returns elevation.ErrCacheMiss.
func (c *ValkeyCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, elevation.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from valkey: %w", key, err)
	}

	return value, nil
}

// Set stores a value with a TTL.
func (c *ValkeyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := c.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Ex(ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to set %s in valkey: %w", key, err)
	}

	return nil
}

// Ping checks that the server is reachable.
func (c *ValkeyCache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *ValkeyCache) Close() {
	c.client.Close()
}
