// Package cache stores encoded split results between runs.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] and
// [MongoCache] for shared deployments, and [NullCache] when caching is
// disabled. Keys are produced by a [Keyer] so that callers never build them
// by hand; [ScopedKeyer] namespaces them per tenant.
//
// Cache failures are never fatal to a split: callers treat a backend error
// on Get as a miss and ignore errors on Set.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A missing or expired entry is
	// reported as a miss, not as an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLSplit is the default lifetime of a cached split result.
const TTLSplit = 24 * time.Hour

// Backend names, as used in configuration and observability events.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists the valid backend names.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// NullCache is the "none" backend: every Get misses and writes are dropped.
type NullCache struct{}

// NewNullCache returns the "none" backend.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Clear(context.Context) (int, error)                       { return 0, nil }
func (NullCache) Close() error                                             { return nil }
