// Package ttlcache is a process-local read-through cache with per-entry expiry.
//
// Concurrent misses on the same key are collapsed into one fetch that does not
// inherit the first caller's cancellation. Fetch errors
// are returned to every waiter and never stored, so a failed refresh leaves the
// previous entry untouched until the next call retries it.
package ttlcache

import (
	"context"
	"sync"
	"time"

	"storefront-checkout/internal/pkg/clock"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Observer receives hit/miss notifications; metrics.Registry implements it.
type Observer interface {
	CacheHit(key string)
	CacheMiss(key string)
}

type Cache struct {
	mu       sync.RWMutex
	entries  map[string]entry
	group    singleflight.Group
	clock    clock.Clock
	observer Observer
}

func New(clk clock.Clock, observer Observer) *Cache {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Cache{
		entries:  make(map[string]entry),
		clock:    clk,
		observer: observer,
	}
}

// Get returns the memoized value for key when it is younger than ttl, otherwise
// calls fetch and stores the result with a fresh expiry.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.lookup(key); ok {
		c.hit(key)
		return v, nil
	}
	c.miss(key)

	// the shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// another caller may have refreshed while we waited on the group
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		value, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.store(key, value, ttl)
		return value, nil
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops key so the next Get refetches.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !e.expiresAt.After(c.clock.Now()) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.clock.Now().Add(ttl)}
}

func (c *Cache) hit(key string) {
	if c.observer != nil {
		c.observer.CacheHit(key)
	}
}

func (c *Cache) miss(key string) {
	if c.observer != nil {
		c.observer.CacheMiss(key)
	}
}

// Fetch is the typed form of Cache.Get.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}
