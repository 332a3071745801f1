package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/clock"
	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/rentora/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// overdueDetailLimit caps the enriched overdue sample in the payload.
const overdueDetailLimit = 10

// StatsCache stores a computed stats payload for a short TTL so dashboard
// polling does not hammer the database.
type StatsCache interface {
	Get(ctx context.Context) (*OccupancyStats, bool)
	Set(ctx context.Context, stats *OccupancyStats)
}

// WaterStats summarizes reading submission across the tenant population
type WaterStats struct {
	Recorded         int         `json:"recorded"`
	Pending          int         `json:"pending"`
	Overdue          int         `json:"overdue"`
	PendingTenantIDs []uuid.UUID `json:"pendingTenantIds"`
	OverdueTenantIDs []uuid.UUID `json:"overdueTenantIds"`
}

// GarbageStats summarizes fee generation for the current month
type GarbageStats struct {
	Recorded int `json:"recorded"`
	Pending  int `json:"pending"`
}

// OverdueTenantDetail is one enriched overdue record
type OverdueTenantDetail struct {
	TenantID     uuid.UUID `json:"tenantId"`
	TenantName   string    `json:"tenantName"`
	UnitNumber   string    `json:"unitNumber"`
	PropertyName string    `json:"propertyName"`
}

// OccupancyStats is the dashboard payload
type OccupancyStats struct {
	TotalActiveTenants    int                   `json:"totalActiveTenants"`
	UnitsOccupied         int64                 `json:"unitsOccupied"`
	UnitsVacant           int64                 `json:"unitsVacant"`
	Water                 WaterStats            `json:"water"`
	Garbage               GarbageStats          `json:"garbage"`
	CurrentPeriod         string                `json:"currentPeriod"`
	CheckPeriod           string                `json:"checkPeriod"`
	IsAfter5th            bool                  `json:"isAfter5th"`
	OverdueTenantsDetails []OverdueTenantDetail `json:"overdueTenantsDetails"`
}

// OccupancyStatsService computes reading and fee submission stats across
// the whole tenant population. Readings for the just-ended month are not
// overdue until the 6th: before that the overdue count is always zero.
type OccupancyStatsService struct {
	tenantRepo   tenancy.TenantRepository
	leaseRepo    tenancy.LeaseRepository
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	readingRepo  billing.WaterReadingRepository
	garbageRepo  billing.GarbageFeeRepository
	cache        StatsCache
	clk          clock.Clock
	logger       *zap.Logger
}

// NewOccupancyStatsService creates a new OccupancyStatsService
func NewOccupancyStatsService(
	tenantRepo tenancy.TenantRepository,
	leaseRepo tenancy.LeaseRepository,
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	readingRepo billing.WaterReadingRepository,
	garbageRepo billing.GarbageFeeRepository,
	cache StatsCache,
	clk clock.Clock,
	logger *zap.Logger,
) *OccupancyStatsService {
	return &OccupancyStatsService{
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		readingRepo:  readingRepo,
		garbageRepo:  garbageRepo,
		cache:        cache,
		clk:          clk,
		logger:       logger,
	}
}

// Stats computes the dashboard payload, serving a cached copy when fresh.
func (s *OccupancyStatsService) Stats(ctx context.Context) (*OccupancyStats, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "occupancy_stats", "compute")
	defer span.End()

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			telemetry.SetAttribute(span, "cache_hit", true)
			return cached, nil
		}
	}

	now := s.clk.Now()
	currentPeriod := valueobject.BillingPeriodOf(now)
	isAfter5th := now.Day() > 5
	checkPeriod := currentPeriod
	if isAfter5th {
		checkPeriod = currentPeriod.Previous()
	}

	leases, err := s.leaseRepo.FindAllActive(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load active leases: %w", err)
	}

	currentSet, err := s.tenantsWithReading(ctx, currentPeriod)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	checkSet, err := s.tenantsWithReading(ctx, checkPeriod)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	stats := &OccupancyStats{
		TotalActiveTenants:    len(leases),
		CurrentPeriod:         currentPeriod.String(),
		CheckPeriod:           checkPeriod.String(),
		IsAfter5th:            isAfter5th,
		OverdueTenantsDetails: []OverdueTenantDetail{},
		Water: WaterStats{
			PendingTenantIDs: []uuid.UUID{},
			OverdueTenantIDs: []uuid.UUID{},
		},
	}

	var overdueLeases []*tenancy.LeaseAgreement
	for _, l := range leases {
		if currentSet[l.TenantID] {
			stats.Water.Recorded++
		} else {
			stats.Water.Pending++
			stats.Water.PendingTenantIDs = append(stats.Water.PendingTenantIDs, l.TenantID)
		}
		// Inside the grace period nothing is overdue, regardless of
		// missing readings.
		if isAfter5th && !checkSet[l.TenantID] {
			stats.Water.Overdue++
			stats.Water.OverdueTenantIDs = append(stats.Water.OverdueTenantIDs, l.TenantID)
			overdueLeases = append(overdueLeases, l)
		}
	}

	garbageRecorded, err := s.garbageRepo.CountByPeriod(ctx, currentPeriod)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count garbage fees: %w", err)
	}
	stats.Garbage.Recorded = int(garbageRecorded)
	if pending := stats.TotalActiveTenants - stats.Garbage.Recorded; pending > 0 {
		stats.Garbage.Pending = pending
	}

	occupied, err := s.unitRepo.CountByStatus(ctx, property.UnitStatusOccupied)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count occupied units: %w", err)
	}
	vacant, err := s.unitRepo.CountByStatus(ctx, property.UnitStatusVacant)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count vacant units: %w", err)
	}
	stats.UnitsOccupied = occupied
	stats.UnitsVacant = vacant

	stats.OverdueTenantsDetails = s.enrichOverdue(ctx, overdueLeases)

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}

	return stats, nil
}

func (s *OccupancyStatsService) tenantsWithReading(ctx context.Context, period valueobject.BillingPeriod) (map[uuid.UUID]bool, error) {
	readings, err := s.readingRepo.FindByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load readings for %s: %w", period, err)
	}
	set := make(map[uuid.UUID]bool, len(readings))
	for _, r := range readings {
		set[r.TenantID] = true
	}
	return set, nil
}

// enrichOverdue resolves names and unit numbers for a bounded sample of
// overdue tenants. Enrichment failures degrade to a partial list instead
// of failing the stats call.
func (s *OccupancyStatsService) enrichOverdue(ctx context.Context, leases []*tenancy.LeaseAgreement) []OverdueTenantDetail {
	details := []OverdueTenantDetail{}
	for _, l := range leases {
		if len(details) >= overdueDetailLimit {
			break
		}

		tenant, err := s.tenantRepo.FindByID(ctx, l.TenantID)
		if err != nil || tenant == nil {
			s.logger.Warn("Failed to enrich overdue tenant",
				zap.String("tenant_id", l.TenantID.String()),
				zap.Error(err))
			continue
		}

		detail := OverdueTenantDetail{
			TenantID:   tenant.ID,
			TenantName: tenant.FullName,
		}
		if unit, err := s.unitRepo.FindByID(ctx, l.UnitID); err == nil && unit != nil {
			detail.UnitNumber = unit.UnitNumber
			if prop, err := s.propertyRepo.FindByID(ctx, unit.PropertyID); err == nil && prop != nil {
				detail.PropertyName = prop.Name
			}
		}
		details = append(details, detail)
	}
	return details
}
