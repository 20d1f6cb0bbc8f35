package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares fixed windows between instances through INCR on a
// per-key counter that expires with the window. PEXPIRE NX rides along with
// every INCR so a key whose TTL was never set gets one on the next request.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := r.key(key)

	results := r.client.DoMulti(
		ctx,
		r.client.B().Incr().Key(redisKey).Build(),
		r.client.B().Pexpire().Key(redisKey).Milliseconds(r.window.Milliseconds()).Nx().Build(),
	)

	count, err := results[0].AsInt64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", redisKey, err)
	}

	if err := results[1].Error(); err != nil {
		return false, fmt.Errorf("pexpire %s: %w", redisKey, err)
	}

	return count <= int64(r.limit), nil
}

func (r *RedisLimiter) key(clientKey string) string {
	return fmt.Sprintf("%s:%s", r.prefix, clientKey)
}
