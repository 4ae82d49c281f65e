package middleware

import (
	"context"
	"strconv"
	"time"

	"dailypay-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisLimiterPrefix = "ratelimit:"

// RedisLimiter is a sliding-window limiter shared by every instance that
// points at the same Redis. Each request is a member of a sorted set scored
// by its arrival time in milliseconds.
type RedisLimiter struct {
	client redis.UniversalClient
	window time.Duration
	max    int64
	now    func() time.Time
}

func NewRedisLimiter(client redis.UniversalClient, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{client: client, window: window, max: int64(max), now: time.Now}
}

// Allow fails open when Redis is unreachable.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	now := l.now()
	redisKey := redisLimiterPrefix + key
	floor := strconv.FormatInt(now.Add(-l.window).UnixMilli(), 10)

	var card *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", "("+floor)
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})
		card = pipe.ZCard(ctx, redisKey)
		pipe.PExpire(ctx, redisKey, l.window)
		return nil
	})
	if err != nil {
		logger.Warn("Redis rate limiter unavailable, allowing request",
			zap.String("key", key),
			zap.Error(err),
		)
		return true
	}

	return card.Val() <= l.max
}
