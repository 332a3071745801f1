package cache

import (
	"context"
	"sync"
	"time"

	appbilling "github.com/rentora/backend/internal/application/billing"
	"github.com/rentora/backend/internal/clock"
)

// MemoryStatsCache holds the occupancy stats snapshot in process memory.
// Suitable for single-instance deployments and as the fallback when redis
// is unreachable.
type MemoryStatsCache struct {
	mu        sync.RWMutex
	stats     *appbilling.OccupancyStats
	expiresAt time.Time
	ttl       time.Duration
	clk       clock.Clock
}

// NewMemoryStatsCache creates an in-memory stats cache with the given TTL
func NewMemoryStatsCache(ttl time.Duration, clk clock.Clock) *MemoryStatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	if clk == nil {
		clk = clock.System()
	}
	return &MemoryStatsCache{ttl: ttl, clk: clk}
}

// Get returns the cached snapshot if present and not expired
func (c *MemoryStatsCache) Get(_ context.Context) (*appbilling.OccupancyStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stats == nil || c.clk.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.stats, true
}

// Set stores the snapshot, resetting the expiry window
func (c *MemoryStatsCache) Set(_ context.Context, stats *appbilling.OccupancyStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = stats
	c.expiresAt = c.clk.Now().Add(c.ttl)
}

var _ appbilling.StatsCache = (*MemoryStatsCache)(nil)
