package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cinehall/proj/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON value cache in front of the screening stats
// projection. Entries expire on their own; the acceptable staleness window
// is the configured TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, cfg config.Redis) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{client: client, ttl: cfg.StatsTTL}, nil
}

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
