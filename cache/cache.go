package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a thin Redis wrapper for registry snapshots. Misses are reported
// as redis.Nil so callers can fall through to the database.
type Cache struct {
	client *redis.Client
}

// NewCache wraps an initialized Redis client.
func NewCache(client *redis.Client) (*Cache, error) {
	if client == nil {
		return nil, errors.New("redis client is not initialized")
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.client.Set(ctx, key, value, expiration).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching the pattern. SCAN keeps this
// usable on large keyspaces.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
