// Package store provides Mapping Store implementations that do not need a
// database: an in-process store and a read-through lookup cache.
package store

import (
	"context"

	"github.com/patrickmn/go-cache"

	"shortlink-allocator/internal/shortener"
)

// MemoryStore keeps mappings in process memory. Entries never expire.
type MemoryStore struct {
	links *cache.Cache
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: cache.New(cache.NoExpiration, 0)}
}

// Insert adds code -> target only if code is absent. go-cache's Add performs
// the existence check and the write under one lock.
func (s *MemoryStore) Insert(ctx context.Context, code shortener.ShortCode, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.links.Add(string(code), target, cache.NoExpiration); err != nil {
		return shortener.ErrAlreadyExists
	}
	return nil
}

// Get returns the target for code or shortener.ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, code shortener.ShortCode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, ok := s.links.Get(string(code))
	if !ok {
		return "", shortener.ErrNotFound
	}
	return v.(string), nil
}

// Len returns the number of stored mappings.
func (s *MemoryStore) Len() int {
	return s.links.ItemCount()
}
