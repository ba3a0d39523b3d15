// Package cachemanager provides small generic caches used to memoize
// derivations that are pure functions of an input identity.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a keyed cache with per-entry TTL.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
