package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/models"
)

// CatalogCache keeps resolved catalog lists in Redis for the short time
// between mutations. Every write path deletes the kind's key before
// returning, so a cached list is never older than the last mutation this
// process saw. Read paths treat any cache failure as a miss.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

func (c *CatalogCache) key(kind string) string {
	return fmt.Sprintf("catalog:resolved:%s", kind)
}

// Get returns the cached resolved list for a kind, or (nil, false) on a
// miss or any cache error.
func (c *CatalogCache) Get(ctx context.Context, kind string) ([]models.CatalogItem, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	raw, err := c.redis.Get(ctx, c.key(kind))
	if err != nil {
		if err != redis.Nil {
			// Treat a broken cache as a miss; the store remains authoritative.
			return nil, false
		}
		return nil, false
	}
	var items []models.CatalogItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	return items, true
}

// Set stores a resolved list for a kind. Failures are ignored.
func (c *CatalogCache) Set(ctx context.Context, kind string, items []models.CatalogItem) {
	if c == nil || c.redis == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, c.key(kind), string(raw), c.ttl)
}

// Invalidate drops the cached list for a kind.
func (c *CatalogCache) Invalidate(ctx context.Context, kind string) {
	if c == nil || c.redis == nil {
		return
	}
	_ = c.redis.Delete(ctx, c.key(kind))
}
