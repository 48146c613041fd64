package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopnavy/pos/internal/config"
	"github.com/shopnavy/pos/internal/model"
)

const productListKey = "pos:products:list"

var _ ProductListCache = (*RedisProductListCache)(nil)

type RedisProductListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func NewRedisProductListCache(client *redis.Client, ttl time.Duration) *RedisProductListCache {
	return &RedisProductListCache{client: client, ttl: ttl}
}

func (c *RedisProductListCache) Get(ctx context.Context) ([]model.ProductListing, bool, error) {
	val, err := c.client.Get(ctx, productListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var products []model.ProductListing
	if err := json.Unmarshal(val, &products); err != nil {
		return nil, false, fmt.Errorf("unmarshal product list: %w", err)
	}

	return products, true, nil
}

func (c *RedisProductListCache) Set(ctx context.Context, products []model.ProductListing) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal product list: %w", err)
	}

	if err := c.client.Set(ctx, productListKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (c *RedisProductListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
