package ratelimit

import (
	"context"
	"testing"
	"time"
)

func newTestLimiter(start time.Time) (*Limiter, *MemoryStore, *time.Time) {
	current := start
	store := NewMemoryStore()
	store.now = func() time.Time { return current }
	limiter := New(store)
	limiter.now = store.now
	return limiter, store, &current
}

func TestCheckWindowSequence(t *testing.T) {
	limiter, _, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	expected := []bool{true, true, true, true, true, false}
	for i, want := range expected {
		result, err := limiter.Check(ctx, "intake:1.2.3.4", 5, time.Minute)
		if err != nil {
			t.Fatalf("check %d: unexpected error: %v", i, err)
		}
		if result.Allowed != want {
			t.Fatalf("check %d: expected allowed=%v, got %v", i, want, result.Allowed)
		}
	}
}

func TestCheckRemaining(t *testing.T) {
	limiter, _, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	for i, want := range []int{2, 1, 0, 0} {
		result, err := limiter.Check(ctx, "key", 3, time.Minute)
		if err != nil {
			t.Fatalf("check %d: unexpected error: %v", i, err)
		}
		if result.Remaining != want {
			t.Fatalf("check %d: expected remaining %d, got %d", i, want, result.Remaining)
		}
	}
}

func TestCheckRetryAfter(t *testing.T) {
	start := time.Unix(1000, 0)
	limiter, _, current := newTestLimiter(start)
	ctx := context.Background()

	result, err := limiter.Check(ctx, "key", 1, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RetryAfter != 0 {
		t.Fatalf("expected zero retry-after while allowed, got %s", result.RetryAfter)
	}

	// 10.5s into the window: 49.5s remain, rounded up to 50.
	*current = start.Add(10*time.Second + 500*time.Millisecond)
	result, err = limiter.Check(ctx, "key", 1, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Fatal("expected second request over limit 1 to be rejected")
	}
	if result.RetryAfter != 50*time.Second {
		t.Fatalf("expected retry-after 50s, got %s", result.RetryAfter)
	}
	if !result.ResetAt.Equal(start.Add(time.Minute)) {
		t.Fatalf("expected reset at window end, got %s", result.ResetAt)
	}
}

func TestCheckFreshWindowAfterReset(t *testing.T) {
	start := time.Unix(1000, 0)
	limiter, _, current := newTestLimiter(start)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		if _, err := limiter.Check(ctx, "key", 5, time.Minute); err != nil {
			t.Fatalf("check %d: unexpected error: %v", i, err)
		}
	}

	*current = start.Add(time.Minute)
	result, err := limiter.Check(ctx, "key", 5, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Fatal("expected fresh window after the previous one elapsed")
	}
	if result.Remaining != 4 {
		t.Fatalf("expected fresh count of 1 leaving 4 remaining, got %d", result.Remaining)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	limiter, _, _ := newTestLimiter(time.Unix(1000, 0))
	ctx := context.Background()

	if _, err := limiter.Check(ctx, "contact:a", 1, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := limiter.Check(ctx, "contact:b", 1, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Fatal("expected independent counter per key")
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	start := time.Unix(1000, 0)
	current := start
	store := NewMemoryStore()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	if _, err := store.Incr(ctx, "a", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Incr(ctx, "b", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = start.Add(2 * time.Minute)
	if err := store.Sweep(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.size(); got != 1 {
		t.Fatalf("expected only the unexpired window to survive, got %d", got)
	}
}

func TestMemoryStoreAmortizedSweep(t *testing.T) {
	start := time.Unix(1000, 0)
	current := start
	store := NewMemoryStore()
	store.now = func() time.Time { return current }
	store.sweepEvery = 3
	ctx := context.Background()

	if _, err := store.Incr(ctx, "stale", time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = start.Add(time.Minute)
	if _, err := store.Incr(ctx, "fresh-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Incr(ctx, "fresh-2", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.size(); got != 2 {
		t.Fatalf("expected stale window swept after %d checks, got size %d", store.sweepEvery, got)
	}
}
