package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/rentora/backend/internal/application/billing"
)

// StatsHandler serves the occupancy and submission dashboard
type StatsHandler struct {
	BaseHandler
	statsService *billingapp.OccupancyStatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *billingapp.OccupancyStatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetOccupancy returns occupancy counts plus water and garbage submission
// status for the period under check. Responses may be served from the
// short-lived stats cache.
func (h *StatsHandler) GetOccupancy(c *gin.Context) {
	stats, err := h.statsService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}
