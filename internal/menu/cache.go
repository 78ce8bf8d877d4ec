package menu

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"resto-dashboard/internal/domain"
)

const catalogKey = "menu:catalog"

// Cache is a best-effort catalog cache; a miss or a cache error just means
// another backend fetch.
type Cache interface {
	Get(ctx context.Context) ([]domain.Dish, bool)
	Set(ctx context.Context, dishes []domain.Dish)
	Delete(ctx context.Context)
}

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]domain.Dish, bool) {
	raw, err := c.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var dishes []domain.Dish
	if err := json.Unmarshal(raw, &dishes); err != nil {
		return nil, false
	}
	return dishes, true
}

func (c *RedisCache) Set(ctx context.Context, dishes []domain.Dish) {
	payload, err := json.Marshal(dishes)
	if err != nil {
		return
	}
	c.Client.Set(ctx, catalogKey, payload, c.TTL)
}

func (c *RedisCache) Delete(ctx context.Context) {
	c.Client.Del(ctx, catalogKey)
}

var _ Cache = (*RedisCache)(nil)
