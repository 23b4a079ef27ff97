package cache

import (
	"context"
	"time"
)

// ScopedCache wraps a Cache and prefixes every key, so several registries can
// share one backend without collisions.
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped returns a view of inner whose keys are prefixed with prefix.
// A nil inner is replaced by a [NullCache]. Scoped views can be chained:
//
//	Scoped(Scoped(c, "update:"), "npm:") // keys become "update:npm:<key>"
func Scoped(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	if s, ok := inner.(*ScopedCache); ok {
		return &ScopedCache{inner: s.inner, prefix: s.prefix + prefix}
	}
	return &ScopedCache{inner: inner, prefix: prefix}
}

// Prefix returns the full key prefix applied by this view.
func (s *ScopedCache) Prefix() string { return s.prefix }

// Get retrieves a prefixed key from the wrapped cache.
func (s *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set stores a prefixed key in the wrapped cache.
func (s *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes a prefixed key from the wrapped cache.
func (s *ScopedCache) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the wrapped cache.
func (s *ScopedCache) Close() error {
	return s.inner.Close()
}

var _ Cache = (*ScopedCache)(nil)
