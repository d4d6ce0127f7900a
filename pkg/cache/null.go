package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. The transport uses it when caching is disabled
// with --no-cache or when no cache directory can be determined, so every
// request goes to the network.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache on which every Get misses.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Keys(context.Context, string) ([]string, error) { return nil, nil }
func (*NullCache) Close() error { return nil }
