package cache

import (
	"time"

	"zeecrown-admin/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns a go-cache backed store.
// cleanupInterval controls how often expired items are purged.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *memoryCache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value any, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *memoryCache) Delete(keys ...string) {
	for _, k := range keys {
		c.store.Delete(k)
	}
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}
