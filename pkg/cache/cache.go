// Package cache provides the key-value stores behind the offline cache.
//
// # Backends
//
//   - [FileCache]: JSON entries on disk, sharded by key hash. The CLI default.
//   - [RedisCache]: a shared Redis instance, for several machines serving the
//     same assets.
//   - [NullCache]: stores nothing; every lookup is a miss.
//
// [Scoped] wraps any backend so that all keys carry a prefix, which is how
// versioned cache names are kept apart.
//
// # Errors
//
// A miss is not an error: Get reports it through its boolean. Transient
// failures can be wrapped with [Retryable] and retried with [Retry].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every stored key that starts with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases resources held by the cache.
	Close() error
}
