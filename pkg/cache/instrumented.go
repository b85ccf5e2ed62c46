package cache

import (
	"context"
	"time"

	"github.com/matzehuels/tracesplit/pkg/observability"
)

// Instrumented reports the hits, misses and writes of a backend to the
// registered observability cache hooks.
type Instrumented struct {
	Cache
	backend string
}

// NewInstrumented wraps c. backend names it in hook events.
func NewInstrumented(c Cache, backend string) *Instrumented {
	return &Instrumented{Cache: c, backend: backend}
}

// Backend returns the backend name.
func (c *Instrumented) Backend() string { return c.backend }

// Get implements Cache.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		observability.Cache().OnCacheHit(ctx, c.backend)
	} else {
		observability.Cache().OnCacheMiss(ctx, c.backend)
	}
	return data, hit, err
}

// Set implements Cache.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.backend, len(data))
	}
	return err
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Clear drops every entry of the wrapped backend when it supports it.
func (c *Instrumented) Clear(ctx context.Context) (int, error) {
	switch b := c.Cache.(type) {
	case Clearer:
		return b.Clear(ctx)
	case *FileCache:
		return b.Clear()
	}
	return 0, nil
}
