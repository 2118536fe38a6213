package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TotalCounts keeps approximate listing totals in redis. Any redis
// failure is treated as a cache miss so the exact count path still
// serves the request.
type TotalCounts struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewTotalCounts(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TotalCounts {
	return &TotalCounts{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *TotalCounts) GetTotal(ctx context.Context, key string) (int, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("totals cache read failed", zap.String("key", key), zap.Error(err))
		}
		return 0, false
	}

	total, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return total, true
}

func (c *TotalCounts) SetTotal(ctx context.Context, key string, total int) {
	if err := c.client.Set(ctx, key, strconv.Itoa(total), c.ttl).Err(); err != nil {
		c.logger.Warn("totals cache write failed", zap.String("key", key), zap.Error(err))
	}
}
