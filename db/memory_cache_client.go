package db

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_cache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 10 * time.Minute

// MemoryCacheClient is an in-process RedisClient backed by go-cache, for
// single-instance deployments without Redis.
type MemoryCacheClient struct {
	cache *cache.Cache[string]
}

func NewMemoryCacheClient() *MemoryCacheClient {
	client := gocache.New(gocache.NoExpiration, memoryCleanupInterval)
	return &MemoryCacheClient{
		cache: cache.New[string](go_cache_store.NewGoCache(client)),
	}
}

// Get maps every store error to ErrCacheMiss; go-cache only fails on absent keys.
func (m *MemoryCacheClient) Get(ctx context.Context, key string) (string, error) {
	value, err := m.cache.Get(ctx, key)
	if err != nil {
		return "", ErrCacheMiss
	}
	return value, nil
}

func (m *MemoryCacheClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return m.cache.Set(ctx, key, value)
	}
	return m.cache.Set(ctx, key, value, store.WithExpiration(ttl))
}

func (m *MemoryCacheClient) Del(ctx context.Context, key string) error {
	return m.cache.Delete(ctx, key)
}

func (m *MemoryCacheClient) Ping(ctx context.Context) error {
	return nil
}
