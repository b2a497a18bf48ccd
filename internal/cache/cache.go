package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stylahq/styla-backend/internal/config"
	"github.com/stylahq/styla-backend/internal/models"
)

// NewRedisClient connects using REDIS_ADDR/REDIS_PASSWORD. Returns nil when
// no address is configured or the server is unreachable; callers degrade to
// uncached reads.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

const productListKey = "styla:products"

// ProductCache is a read-through cache for the full product listing. All
// methods are no-ops when constructed with a nil client.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func (c *ProductCache) Enabled() bool {
	return c.rdb != nil
}

func (c *ProductCache) Get(ctx context.Context) ([]models.Product, bool) {
	if c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, productListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *ProductCache) Set(ctx context.Context, products []models.Product) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, productListKey, raw, c.ttl)
}

func (c *ProductCache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, productListKey)
}
