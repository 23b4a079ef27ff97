// Package cache stores registry answers between update checks.
//
// The Kojioka API client never caches: every FetchStream, SearchTrack and
// Status call goes to the remote service. Only the registry collaborators
// consulted by the update notifier use a [Cache], so a host that restarts
// often does not hit the registry on every start.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per key under a directory (CLI default)
//   - [RedisCache]: shared storage for multi-instance hosts
//   - [NullCache]: never stores anything (library default)
//
// Use [Scoped] to prefix keys per registry:
//
//	c, _ := cache.NewFileCache(dir)
//	npmCache := cache.Scoped(c, "npm:")
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get returns (nil, false, nil) on a miss, including expired entries.
// A ttl of 0 passed to Set means the entry never expires.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
