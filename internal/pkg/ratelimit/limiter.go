// Package ratelimit implements fixed-window admission control keyed by caller.
package ratelimit

import (
	"sync"
	"time"

	"storefront-checkout/internal/pkg/clock"
)

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter admits at most max requests per key within each window. A window
// starts with the first request for a key and is reset lazily by the first
// request that arrives after it ends.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	buckets map[string]*bucket
	clock   clock.Clock
}

func New(max int, window time.Duration, clk clock.Clock) *Limiter {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if max < 1 {
		max = 1
	}
	return &Limiter{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
		clock:   clk,
	}
}

func (l *Limiter) Allow(key string) Result {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
		l.sweep(now)
	}

	if b.count >= l.max {
		return Result{
			Allowed:    false,
			Limit:      l.max,
			Remaining:  0,
			ResetAt:    b.resetAt,
			RetryAfter: b.resetAt.Sub(now),
		}
	}

	b.count++
	return Result{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - b.count,
		ResetAt:   b.resetAt,
	}
}

// sweep drops expired buckets once the map grows; caller holds l.mu.
func (l *Limiter) sweep(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for k, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}
