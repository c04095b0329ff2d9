package ratelimit

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/config"
)

// Module wires the limiter with a counter store. A configured redis address
// selects the shared store; otherwise counters stay process-local.
var Module = fx.Provide(newStore, New)

func newStore(cfg *config.Config) CounterStore {
	if cfg.RedisAddr != "" {
		return NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}
	return NewMemoryStore()
}
