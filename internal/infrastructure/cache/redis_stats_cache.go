package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appbilling "github.com/rentora/backend/internal/application/billing"
	"github.com/rentora/backend/internal/infrastructure/config"
)

const (
	statsCacheKey   = "billing:stats:occupancy"
	defaultStatsTTL = 60 * time.Second
)

// NewRedisClient creates and pings a Redis client from configuration
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// RedisStatsCache caches the occupancy stats payload in Redis with a short
// TTL. Cache misses and Redis failures both fall through to a recompute, so
// the dashboard keeps working when Redis is down.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStatsCache creates a stats cache with the given TTL
func NewRedisStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &RedisStatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached stats payload, or false on miss or Redis failure
func (c *RedisStatsCache) Get(ctx context.Context) (*appbilling.OccupancyStats, bool) {
	data, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var stats appbilling.OccupancyStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Warn("stats cache payload corrupt, discarding", zap.Error(err))
		_ = c.client.Del(ctx, statsCacheKey).Err()
		return nil, false
	}

	return &stats, true
}

// Set stores the stats payload, best effort
func (c *RedisStatsCache) Set(ctx context.Context, stats *appbilling.OccupancyStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warn("stats cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, statsCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

var _ appbilling.StatsCache = (*RedisStatsCache)(nil)
