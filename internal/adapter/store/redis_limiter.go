package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter bounds how many messages a single session may send. Counters
// expire after a day so abandoned sessions do not pin keys forever.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		ttl:    24 * time.Hour,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, sessionID string) (bool, error) {
	val, err := r.client.Get(ctx, "session_msgs:"+sessionID).Result()
	if err == redis.Nil {
		return true, nil // no messages yet
	}
	if err != nil {
		return false, err
	}
	count, _ := strconv.Atoi(val)
	return count < r.limit, nil
}

func (r *RedisLimiter) Increment(ctx context.Context, sessionID string) error {
	key := "session_msgs:" + sessionID
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return r.client.Expire(ctx, key, r.ttl).Err()
	}
	return nil
}
