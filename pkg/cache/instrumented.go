package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/mazer/pkg/observability"
)

// Instrumented reports hits, misses and writes of the wrapped cache to the
// registered observability.CacheHooks.
type Instrumented struct {
	Cache
}

// Instrument wraps c. Wrapping a nil cache wraps a NullCache.
func Instrument(c Cache) Cache {
	if c == nil {
		c = NewNullCache()
	}
	if _, ok := c.(*Instrumented); ok {
		return c
	}
	return &Instrumented{Cache: c}
}

// Get forwards to the wrapped cache and records the outcome.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

// Set forwards to the wrapped cache and records successful writes.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// KeyType returns the stage a key belongs to: snapshot, layout, artifact or
// other. Scope prefixes are ignored.
func KeyType(key string) string {
	for _, kind := range []string{"snapshot", "layout", "artifact"} {
		if strings.HasPrefix(key, kind+":") || strings.Contains(key, ":"+kind+":") {
			return kind
		}
	}
	return "other"
}
