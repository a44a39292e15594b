package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/AbdelkaderTk/go-shop/internal/cart/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "cart:"
	defaultTTL = 15 * time.Minute
	// spread expiries so a burst of warmed carts does not expire in one wave
	ttlJitter = 5 * time.Minute
)

// RedisCache stores each cart as a JSON blob under "cart:<userID>".
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: defaultTTL}
}

func (c *RedisCache) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := c.client.Get(ctx, keyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cart cache get: %w", err)
	}

	cart := &domain.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("cart cache decode: %w", err)
	}
	return cart, nil
}

func (c *RedisCache) Set(ctx context.Context, userID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart cache encode: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+userID, data, c.ttl+rand.N(ttlJitter)).Err(); err != nil {
		return fmt.Errorf("cart cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("cart cache delete: %w", err)
	}
	return nil
}
