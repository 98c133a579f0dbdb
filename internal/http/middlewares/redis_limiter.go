package middleware

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter shares the counters between instances. Each key is an
// INCR counter that expires with its window.
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
	k := r.prefix + ":" + key

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		cmd := r.client.B().Pexpire().Key(k).Milliseconds(r.window.Milliseconds()).Build()
		if err := r.client.Do(ctx, cmd).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}
