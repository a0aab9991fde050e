package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss reports that the cache holds no catalog copy.
var ErrCacheMiss = errors.New("catalog not cached")

const cacheKey = "catalog:productos"

// Cache is an optional read-through cache in front of the document store.
type Cache interface {
	Get(ctx context.Context) ([]Product, error)
	Set(ctx context.Context, products []Product) error
	Invalidate(ctx context.Context) error
}

// RedisCache caches the catalog in Redis with a jittered TTL so a fleet of
// clients does not refetch in lockstep.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewRedisCache creates a RedisCache with a 15 minute base TTL.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (r *RedisCache) Get(ctx context.Context) ([]Product, error) {
	data, err := r.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal cached catalog failed: %w", err)
	}
	return products, nil
}

func (r *RedisCache) Set(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal catalog failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	if err := r.client.Set(ctx, cacheKey, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
