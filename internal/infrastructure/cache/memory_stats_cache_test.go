package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/rentora/backend/internal/application/billing"
	"github.com/rentora/backend/internal/clock"
)

func TestMemoryStatsCache_RoundTrip(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	c := NewMemoryStatsCache(60*time.Second, clk)

	_, ok := c.Get(context.Background())
	assert.False(t, ok, "empty cache must miss")

	stats := &appbilling.OccupancyStats{
		TotalActiveTenants: 12,
		UnitsOccupied:      12,
		UnitsVacant:        3,
		CurrentPeriod:      "2024-06",
	}
	c.Set(context.Background(), stats)

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, 12, got.TotalActiveTenants)
	assert.Equal(t, "2024-06", got.CurrentPeriod)
}

func TestMemoryStatsCache_ExpiresAfterTTL(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	c := NewMemoryStatsCache(60*time.Second, clk)

	c.Set(context.Background(), &appbilling.OccupancyStats{TotalActiveTenants: 1})

	clk.Advance(59 * time.Second)
	_, ok := c.Get(context.Background())
	assert.True(t, ok, "entry within TTL must hit")

	clk.Advance(2 * time.Second)
	_, ok = c.Get(context.Background())
	assert.False(t, ok, "entry past TTL must miss")
}

func TestMemoryStatsCache_SetResetsExpiry(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))
	c := NewMemoryStatsCache(60*time.Second, clk)

	c.Set(context.Background(), &appbilling.OccupancyStats{TotalActiveTenants: 1})
	clk.Advance(45 * time.Second)
	c.Set(context.Background(), &appbilling.OccupancyStats{TotalActiveTenants: 2})
	clk.Advance(45 * time.Second)

	got, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, 2, got.TotalActiveTenants)
}
