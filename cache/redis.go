package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache is a Redis-backed cache. Values are stored as JSON arrays.
type RedisCache struct {
	client     *redis.Client
	expiration time.Duration
}

// NewRedisCache creates a new RedisCache.
func NewRedisCache(addr, password string, db int, expiration time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: rdb, expiration: expiration}
}

// Get retrieves a cached result. Connection and decoding errors count as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		slog.Warn("redis cache get failed", "key", key, "error", err)
		return nil, false
	}

	var texts []string
	if err := json.Unmarshal(val, &texts); err != nil {
		slog.Warn("redis cache entry is not a string list", "key", key, "error", err)
		return nil, false
	}
	return texts, true
}

// Set stores value with the cache expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []string) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Warn("redis cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.expiration).Err(); err != nil {
		slog.Warn("redis cache set failed", "key", key, "error", err)
	}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
