package cache

import (
	"context"
	"time"

	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin wrapper over the Redis client. A nil *Cache is valid and
// behaves as a permanent miss, so callers never branch on availability.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. Returns nil when no address is configured or the
// server is unreachable; the caller degrades to uncached reads.
func New(cfg *config.Config) *Cache {
	if cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
		return nil
	}

	ttl := time.Duration(cfg.Redis.TTL) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	logger.Info("Redis cache connected", "addr", cfg.Redis.Addr, "ttl", ttl.String())
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached payload for key, or ("", false) on a miss or error.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set stores the payload under key for the configured TTL. Failures are
// logged, never surfaced.
func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logger.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops a key.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn("Cache invalidation failed", "key", key, "error", err)
	}
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
