package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares windows across processes via INCR with a window-length
// TTL, so all instances of the portal count against the same budget.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisStore wraps a redis client as a counter store.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:", now: time.Now}
}

// Incr bumps the key's counter, attaching the window TTL on first increment.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (Counter, error) {
	redisKey := s.prefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Counter{}, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return Counter{}, err
		}
	}

	ttl, err := s.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return Counter{}, err
	}
	if ttl < 0 {
		ttl = window
	}

	return Counter{Count: int(count), ResetAt: s.now().Add(ttl)}, nil
}

// Sweep is a no-op: redis evicts windows through their TTL.
func (s *RedisStore) Sweep(context.Context) error {
	return nil
}
