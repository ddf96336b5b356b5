package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	ratelimitDomain "github.com/hhgcare/hhg/internal/domain/ratelimit"
)

const (
	redisKeyPrefix   = "hhg:ratelimit:"
	fieldCount       = "count"
	fieldWindowStart = "window_start"
)

// RedisCounterStore keeps one hash per key holding the count and the window
// start in unix milliseconds. Hashes expire shortly after their window so
// idle keys do not accumulate.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Get(ctx context.Context, key string) (*ratelimitDomain.Counter, error) {
	vals, err := s.client.HMGet(ctx, s.redisKey(key), fieldCount, fieldWindowStart).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read counter: %w", err)
	}

	// A hash without window_start can only come from an increment racing an
	// expiry; treat it as absent so the next check resets it.
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return nil, nil
	}

	count, err := strconv.Atoi(fmt.Sprint(vals[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid counter value %v: %w", vals[0], err)
	}
	startMs, err := strconv.ParseInt(fmt.Sprint(vals[1]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid window start %v: %w", vals[1], err)
	}

	return &ratelimitDomain.Counter{
		Key:         key,
		Count:       count,
		WindowStart: time.UnixMilli(startMs).UTC(),
	}, nil
}

func (s *RedisCounterStore) Reset(ctx context.Context, key string, windowStart time.Time, window time.Duration) error {
	redisKey := s.redisKey(key)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, redisKey, fieldCount, 1, fieldWindowStart, windowStart.UnixMilli())
	pipe.PExpire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to reset counter: %w", err)
	}
	return nil
}

func (s *RedisCounterStore) Increment(ctx context.Context, key string) error {
	if err := s.client.HIncrBy(ctx, s.redisKey(key), fieldCount, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment counter: %w", err)
	}
	return nil
}

func (s *RedisCounterStore) redisKey(key string) string {
	return redisKeyPrefix + key
}
