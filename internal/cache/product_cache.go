package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kdas/shopkart-backend/config"
	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	productsKey = "shopkart:products"
	productsTTL = 5 * time.Minute
)

// ProductCache caches the product listing in Redis. It is best-effort: any
// Redis failure is logged and treated as a cache miss so the store remains
// the source of truth.
type ProductCache struct {
	client *redis.Client
}

// New connects to Redis and returns the cache, or an error when Redis is
// unreachable. Callers running without Redis simply pass a nil cache to the
// product service.
func New(cfg *config.RedisConfig) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})
	return &ProductCache{client: client}, nil
}

func (c *ProductCache) GetProducts() ([]model.Product, bool) {
	data, err := c.client.Get(context.Background(), productsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Redis read failed, falling back to store", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.Warn("Corrupt product cache entry, dropping it", map[string]interface{}{
			"error": err.Error(),
		})
		c.Invalidate()
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetProducts(products []model.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		logger.Warn("Failed to encode products for cache", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := c.client.Set(context.Background(), productsKey, data, productsTTL).Err(); err != nil {
		logger.Warn("Redis write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached listing; called on every product write.
func (c *ProductCache) Invalidate() {
	if err := c.client.Del(context.Background(), productsKey).Err(); err != nil {
		logger.Warn("Redis invalidation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// Close closes the Redis connection
func (c *ProductCache) Close() error {
	return c.client.Close()
}
