package ratelimit

import (
	"context"
	"sync"
	"time"
)

const defaultSweepEvery = 256

// MemoryStore keeps windows in a process-local map. Counters are not shared
// across processes: every instance rate-limits independently, which is the
// accepted behavior for single-instance deployments. Multi-instance setups
// should use RedisStore instead.
type MemoryStore struct {
	mu         sync.Mutex
	counters   map[string]Counter
	now        func() time.Time
	checks     int
	sweepEvery int
}

// NewMemoryStore constructs an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters:   make(map[string]Counter),
		now:        time.Now,
		sweepEvery: defaultSweepEvery,
	}
}

// Incr bumps the key's counter, restarting the window when it has elapsed.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	counter, ok := s.counters[key]
	if !ok || !now.Before(counter.ResetAt) {
		counter = Counter{Count: 1, ResetAt: now.Add(window)}
	} else {
		counter.Count++
	}
	s.counters[key] = counter

	// Amortized cleanup keeps the map bounded without a background goroutine.
	s.checks++
	if s.checks >= s.sweepEvery {
		s.checks = 0
		s.sweepLocked(now)
	}

	return counter, nil
}

// Sweep drops every expired window.
func (s *MemoryStore) Sweep(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(s.now())
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, counter := range s.counters {
		if !now.Before(counter.ResetAt) {
			delete(s.counters, key)
		}
	}
}

func (s *MemoryStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}
