package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

const productTTL = time.Minute

// ProductCache is a read-through cache for catalog lookups.
type ProductCache interface {
	Get(ctx context.Context, id int64) (*model.Product, bool)
	Set(ctx context.Context, product *model.Product)
	Invalidate(ctx context.Context, id int64)
}

// RedisProductCache caches product snapshots in redis with a short TTL.
type RedisProductCache struct {
	client *redis.Client
}

// NewRedisProductCache builds a cache over the given address.
func NewRedisProductCache(addr string) *RedisProductCache {
	return &RedisProductCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

// Get returns the cached product if present and decodable.
func (c *RedisProductCache) Get(ctx context.Context, id int64) (*model.Product, bool) {
	raw, err := c.client.Get(ctx, productKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var p model.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	return &p, true
}

// Set stores the product snapshot. Failures are ignored, reads fall through.
func (c *RedisProductCache) Set(ctx context.Context, product *model.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	c.client.Set(ctx, productKey(product.ID), data, productTTL)
}

// Invalidate drops a cached product after catalog mutations.
func (c *RedisProductCache) Invalidate(ctx context.Context, id int64) {
	c.client.Del(ctx, productKey(id))
}

// Close releases the underlying connection.
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// NopProductCache is used when no redis address is configured.
type NopProductCache struct{}

func (NopProductCache) Get(context.Context, int64) (*model.Product, bool) { return nil, false }
func (NopProductCache) Set(context.Context, *model.Product)              {}
func (NopProductCache) Invalidate(context.Context, int64)                {}
