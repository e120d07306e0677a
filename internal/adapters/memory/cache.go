package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned by Get for absent or expired keys.
var ErrCacheMiss = errors.New("cache miss")

// Cache implements ports.CacheService in process. It backs the services
// when Valkey is disabled or unreachable.
type Cache struct {
	store *gocache.Cache
}

// NewCache creates a cache that purges expired entries every cleanup interval.
func NewCache(cleanup time.Duration) *Cache {
	return &Cache{store: gocache.New(gocache.NoExpiration, cleanup)}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return v.([]byte), nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	ttl := gocache.NoExpiration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	c.store.Set(key, value, ttl)
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
