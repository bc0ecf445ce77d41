package store

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"shortlink-allocator/internal/shortener"
)

// Cached fronts a Store with an in-process cache of successful lookups.
// Mappings are never mutated, so a cached entry cannot go stale; misses are
// not cached because the code may be allocated later.
type Cached struct {
	inner   shortener.Store
	entries *cache.Cache
}

// NewCached wraps inner. ttl bounds how long a lookup stays resident.
func NewCached(inner shortener.Store, ttl time.Duration) *Cached {
	return &Cached{
		inner:   inner,
		entries: cache.New(ttl, 2*ttl),
	}
}

// Insert delegates to the wrapped store and primes the cache on success.
func (c *Cached) Insert(ctx context.Context, code shortener.ShortCode, target string) error {
	if err := c.inner.Insert(ctx, code, target); err != nil {
		return err
	}
	c.entries.SetDefault(string(code), target)
	return nil
}

// Get serves from cache when possible and fills it from the wrapped store.
func (c *Cached) Get(ctx context.Context, code shortener.ShortCode) (string, error) {
	if v, ok := c.entries.Get(string(code)); ok {
		return v.(string), nil
	}
	target, err := c.inner.Get(ctx, code)
	if err != nil {
		return "", err
	}
	c.entries.SetDefault(string(code), target)
	return target, nil
}
