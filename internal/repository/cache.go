package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/config"
	"github.com/anujghosh1220/restaurant-management-system/internal/metrics"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

const (
	menuKey         = "menu:items"
	defaultCacheTTL = 5 * time.Minute
)

// RedisMenuCache implements MenuCache using Redis. It caches the unfiltered
// menu listing; category-filtered listings always hit the database.
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Entry
}

// NewRedisMenuCache creates a new Redis-based menu cache.
func NewRedisMenuCache(cfg config.RedisConfig, logger *logrus.Entry) *RedisMenuCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisMenuCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetMenu retrieves the cached menu listing. A miss returns (nil, nil).
func (c *RedisMenuCache) GetMenu(ctx context.Context) ([]*models.MenuItem, error) {
	data, err := c.client.Get(ctx, menuKey).Bytes()
	if err == redis.Nil {
		metrics.MenuCacheMisses.Inc()
		c.logger.Debug("Menu cache miss")
		return nil, nil
	}
	if err != nil {
		c.logger.WithField("error", err.Error()).Error("Menu cache get error")
		return nil, err
	}

	var items []*models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	metrics.MenuCacheHits.Inc()
	c.logger.Debug("Menu cache hit")
	return items, nil
}

// SetMenu stores the menu listing.
func (c *RedisMenuCache) SetMenu(ctx context.Context, items []*models.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, menuKey, data, c.ttl).Err(); err != nil {
		c.logger.WithField("error", err.Error()).Error("Menu cache set error")
		return err
	}

	return nil
}

// Invalidate drops the cached listing. Called after any menu mutation,
// discount change or sweep.
func (c *RedisMenuCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, menuKey).Err(); err != nil {
		c.logger.WithField("error", err.Error()).Error("Menu cache invalidate error")
		return err
	}
	return nil
}
