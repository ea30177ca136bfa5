package repository

import (
	"context"
	"time"

	"github.com/tnqbao/gau-showcase-service/infra"
)

const (
	projectListKey = "showcase:projects:all"
	partnerListKey = "showcase:partners:all"
	statListKey    = "showcase:stats:all"
)

// listCache is a read-through cache for the public list endpoints. A nil
// Redis client turns every call into a no-op; cache failures never fail a read.
type listCache struct {
	redis *infra.RedisClient
	ttl   time.Duration
}

func newListCache(redis *infra.RedisClient, ttl time.Duration) *listCache {
	return &listCache{redis: redis, ttl: ttl}
}

func (c *listCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}
	return c.redis.Get(ctx, key, dest) == nil
}

func (c *listCache) set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Set(ctx, key, value, c.ttl)
}

func (c *listCache) invalidate(ctx context.Context, key string) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, key)
}
