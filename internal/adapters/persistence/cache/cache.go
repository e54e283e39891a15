package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered ledger views under versioned keys. A payment
// bumps the loan's version key, which orphans every view snapshotted
// before it, so a hit is never older than the newest committed payment.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Close() error
}

// RedisCache is a Redis-backed Cache
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache for the given address
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Close releases the underlying Redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NoopCache is used when no Redis address is configured; every lookup
// misses and writes are discarded.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }

func (NoopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (NoopCache) Del(ctx context.Context, key string) error { return nil }

func (NoopCache) Close() error { return nil }
