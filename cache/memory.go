package cache

import (
	"context"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/patrickmn/go-cache"
)

const shardCount = 16

// MemoryCache is an in-process cache split into shards.
type MemoryCache struct {
	shards     []*cache.Cache
	expiration time.Duration
}

// NewMemoryCache creates a new MemoryCache.
func NewMemoryCache(expiration, cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		shards:     make([]*cache.Cache, shardCount),
		expiration: expiration,
	}
	for i := range c.shards {
		c.shards[i] = cache.New(expiration, cleanupInterval)
	}
	return c
}

func (c *MemoryCache) shard(key string) *cache.Cache {
	return c.shards[xxhash.Sum64String(key)&(shardCount-1)]
}

// Get retrieves a copy of a cached result.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]string, bool) {
	val, found := c.shard(key).Get(key)
	if !found {
		return nil, false
	}
	texts, ok := val.([]string)
	if !ok {
		return nil, false
	}
	return append([]string(nil), texts...), true
}

// Set stores a copy of value.
func (c *MemoryCache) Set(ctx context.Context, key string, value []string) {
	c.shard(key).Set(key, append([]string(nil), value...), c.expiration)
}
