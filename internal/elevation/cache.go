package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/UnknownOlympus/argus/internal/metrics"
	"github.com/UnknownOlympus/argus/internal/models"
)

// ErrCacheMiss is returned by a Cache when the key is not stored.
var ErrCacheMiss = errors.New("elevation cache miss")

// Cache stores encoded elevation values.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedProvider serves elevations from a Cache and falls through to the
// wrapped provider on a miss. Cache failures never fail a lookup.
type CachedProvider struct {
	next    Provider
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewCachedProvider wraps next with cache, storing fresh lookups for ttl.
func NewCachedProvider(
	next Provider,
	cache Cache,
	ttl time.Duration,
	metrics *metrics.Metrics,
	log *slog.Logger,
) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl, metrics: metrics, log: log}
}

// Elevation returns the cached elevation for coords or looks it up and caches it.
func (cp *CachedProvider) Elevation(ctx context.Context, coords models.Coordinates) (float64, error) {
	key := CacheKey(coords)

	raw, err := cp.cache.Get(ctx, key)
	switch {
	case err == nil:
		elevation, parseErr := strconv.ParseFloat(string(raw), 64)
		if parseErr == nil {
			cp.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return elevation, nil
		}
		cp.log.WarnContext(ctx, "Dropping malformed cached elevation", "key", key, "error", parseErr)
	case errors.Is(err, ErrCacheMiss):
		cp.log.DebugContext(ctx, "Elevation cache miss", "key", key)
	default:
		cp.log.WarnContext(ctx, "Elevation cache unavailable", "key", key, "error", err)
	}
	cp.metrics.CacheLookups.WithLabelValues("miss").Inc()

	elevation, err := cp.next.Elevation(ctx, coords)
	if err != nil {
		return 0, err
	}

	value := []byte(strconv.FormatFloat(elevation, 'f', -1, 64))
	if err = cp.cache.Set(ctx, key, value, cp.ttl); err != nil {
		cp.log.WarnContext(ctx, "Failed to cache elevation", "key", key, "error", err)
	}

	return elevation, nil
}

// CacheKey returns the cache key for coords. Coordinates are rounded to five
// decimals (about one meter), which is finer than any elevation model.
func CacheKey(coords models.Coordinates) string {
	return fmt.Sprintf("elevation:%.5f:%.5f", coords.Latitude, coords.Longitude)
}
