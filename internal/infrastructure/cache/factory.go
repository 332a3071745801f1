package cache

import (
	"time"

	"go.uber.org/zap"

	appbilling "github.com/rentora/backend/internal/application/billing"
	"github.com/rentora/backend/internal/clock"
	"github.com/rentora/backend/internal/infrastructure/config"
)

// StatsCacheFactory creates stats caches based on configuration
type StatsCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatsCacheFactoryOption is a functional option for configuring the factory
type StatsCacheFactoryOption func(*StatsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory
// cache when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatsCacheFactory creates a new factory
func NewStatsCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...StatsCacheFactoryOption) *StatsCacheFactory {
	f := &StatsCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateCache returns a Redis-backed stats cache when Redis is reachable,
// falling back to the in-memory cache otherwise. In-memory caches do not
// share state across instances, so a multi-instance deployment behind a
// failed Redis recomputes per instance until Redis returns.
func (f *StatsCacheFactory) CreateCache() (appbilling.StatsCache, error) {
	client, err := NewRedisClient(f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, err
		}
		f.logger.Warn("Redis unavailable, using in-memory stats cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err))
		return NewMemoryStatsCache(f.ttl, clock.System()), nil
	}

	f.logger.Info("Using Redis stats cache",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Duration("ttl", f.ttl))
	return NewRedisStatsCache(client, f.ttl, f.logger), nil
}
