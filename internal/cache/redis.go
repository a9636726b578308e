package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	purchaseKeyPrefix = "purchase:"
	reservationTTL    = 24 * time.Hour
)

// RedisCache reserves purchase request ids so a retried request cannot debit
// twice. A reservation outlives any reasonable client retry window.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Reserve claims the request id. It returns false when the id was already
// claimed by an earlier attempt.
func (c *RedisCache) Reserve(ctx context.Context, requestID string) (bool, error) {
	return c.client.SetNX(ctx, purchaseKeyPrefix+requestID, 1, reservationTTL).Result()
}
