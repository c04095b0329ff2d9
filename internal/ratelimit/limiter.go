// Package ratelimit implements a fixed-window request counter. Each key owns
// one {count, resetAt} window that restarts entirely once elapsed; where the
// windows live is up to the injected CounterStore.
package ratelimit

import (
	"context"
	"time"
)

// Counter is one key's window state.
type Counter struct {
	Count   int
	ResetAt time.Time
}

// CounterStore holds per-key windows. Incr must be atomic with respect to
// concurrent checks of the same key.
type CounterStore interface {
	// Incr bumps the counter for key, starting a fresh window of the given
	// length when none exists or the previous one has elapsed, and returns
	// the resulting state.
	Incr(ctx context.Context, key string, window time.Duration) (Counter, error)
	// Sweep drops expired windows. A TTL-evicting store may make it a no-op.
	Sweep(ctx context.Context) error
}

// Result is the outcome of a single rate-limit check.
type Result struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter decides whether a keyed action is allowed right now.
type Limiter struct {
	store CounterStore
	now   func() time.Time
}

// New builds a limiter on top of the provided counter store.
func New(store CounterStore) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Check counts one request against the key's window and reports whether it
// fits under limit. RetryAfter is zero while allowed, otherwise the time
// until the window resets rounded up to whole seconds.
func (l *Limiter) Check(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	counter, err := l.store.Incr(ctx, key, window)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Allowed: counter.Count <= limit,
		ResetAt: counter.ResetAt,
	}
	if remaining := limit - counter.Count; remaining > 0 {
		result.Remaining = remaining
	}
	if !result.Allowed {
		result.RetryAfter = ceilSeconds(counter.ResetAt.Sub(l.now()))
	}
	return result, nil
}

func ceilSeconds(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}
