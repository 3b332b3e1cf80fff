package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"tasks-api/internal/config"
	"tasks-api/pkg/logger"
)

var (
	client *redis.Client
	once   sync.Once
)

// Client returns the global Redis client (initialized on first use). It is nil
// when REDIS_URL is unset or Redis is unreachable; callers run uncached then.
func Client(ctx context.Context) *redis.Client {
	once.Do(func() {
		cfg := config.Get()
		if cfg.RedisURL == "" {
			logger.Info(ctx, "Redis disabled (REDIS_URL not set)")
			return
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error(ctx, "Invalid REDIS_URL", "error", err)
			return
		}
		opts.PoolSize = cfg.RedisPoolSize
		c := redis.NewClient(opts)
		if err := c.Ping(ctx).Err(); err != nil {
			logger.Error(ctx, "Redis ping failed", "error", err)
			c.Close()
			return
		}
		client = c
		logger.Info(ctx, "Redis client initialized", "pool_size", cfg.RedisPoolSize)
	})
	return client
}

// RawCache stores opaque byte values with a fixed TTL. Failures are logged and
// treated as misses.
type RawCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRawCache(rdb *redis.Client, ttl time.Duration) *RawCache {
	return &RawCache{rdb: rdb, ttl: ttl}
}

// Get returns (nil, false) on miss or error.
func (c *RawCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logger.Debug(ctx, "Redis get failed", "error", err, "key", key)
		return nil, false
	}
	return b, true
}

func (c *RawCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logger.Debug(ctx, "Redis set failed", "error", err, "key", key)
	}
}

// Close releases the global client if it was opened.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}
