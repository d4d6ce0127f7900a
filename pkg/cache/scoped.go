package cache

import (
	"context"
	"strings"
	"time"
)

// Scoped wraps a Cache so that every key carries a prefix. Keys returned by
// [Scoped.Keys] have the prefix stripped again.
//
// Example usage:
//
//	// Entries of one offline cache version
//	current := cache.NewScoped(store, "weeks-cache-v1:")
//	current.Set(ctx, "GET:https://weeks.example.com/", body, 0)
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a cache view with a prefix. Closing the view does not
// close inner.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Prefix returns the key prefix of the view.
func (s *Scoped) Prefix() string { return s.prefix }

// Get retrieves a prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Keys lists keys of the view that start with prefix.
func (s *Scoped) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}

// Close does nothing; the underlying cache is owned by the caller.
func (s *Scoped) Close() error { return nil }

// Ensure Scoped implements Cache.
var _ Cache = (*Scoped)(nil)
