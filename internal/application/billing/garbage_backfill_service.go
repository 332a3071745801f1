package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/clock"
	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/rentora/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// fallbackGarbageFee is charged when neither the property nor the fee
// configuration yields an amount.
var fallbackGarbageFee = valueobject.NewMoneyKESFromFloat(150)

// fallbackBackfillMonths bounds the backfill window when a tenant has no
// lease and no usable creation date.
const fallbackBackfillMonths = 12

// GarbageBackfillService fills the gaps in a tenant's garbage fee history:
// one PENDING fee per calendar month from the lease start month through the
// current month. Re-running it only fills remaining gaps, never duplicates.
type GarbageBackfillService struct {
	tenantRepo   tenancy.TenantRepository
	leaseRepo    tenancy.LeaseRepository
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	garbageRepo  billing.GarbageFeeRepository
	publisher    shared.EventPublisher
	clk          clock.Clock
	logger       *zap.Logger
}

// NewGarbageBackfillService creates a new GarbageBackfillService
func NewGarbageBackfillService(
	tenantRepo tenancy.TenantRepository,
	leaseRepo tenancy.LeaseRepository,
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	garbageRepo billing.GarbageFeeRepository,
	publisher shared.EventPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *GarbageBackfillService {
	return &GarbageBackfillService{
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		garbageRepo:  garbageRepo,
		publisher:    publisher,
		clk:          clk,
		logger:       logger,
	}
}

// BackfillResult reports what a backfill run created
type BackfillResult struct {
	TenantID       uuid.UUID             `json:"tenantId"`
	GeneratedCount int                   `json:"generatedCount"`
	Fees           []*billing.GarbageFee `json:"fees"`
}

// Backfill generates the tenant's missing garbage fees. A tenant whose
// unit is currently VACANT gets nothing: occupancy is a hard gate.
// Per-month failures are logged and skipped without aborting the rest of
// the run.
func (s *GarbageBackfillService) Backfill(ctx context.Context, tenantID uuid.UUID) (*BackfillResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "garbage_backfill", "generate")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrTenantID, tenantID.String())

	if tenantID == uuid.Nil {
		err := shared.NewDomainError("INVALID_INPUT", "Tenant ID is required")
		telemetry.RecordError(span, err)
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		err := shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &BackfillResult{TenantID: tenantID, Fees: []*billing.GarbageFee{}}

	lease, err := s.leaseRepo.FindActiveByTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}

	amount := fallbackGarbageFee
	if lease != nil {
		unit, err := s.unitRepo.FindByID(ctx, lease.UnitID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load unit: %w", err)
		}
		if unit != nil && unit.Status == property.UnitStatusVacant {
			s.logger.Info("Skipping garbage backfill for vacant unit",
				zap.String("tenant_id", tenantID.String()),
				zap.String("unit_id", unit.ID.String()))
			return result, nil
		}
		if unit != nil {
			prop, err := s.propertyRepo.FindByID(ctx, unit.PropertyID)
			if err != nil {
				telemetry.RecordError(span, err)
				return nil, fmt.Errorf("failed to load property: %w", err)
			}
			if prop != nil && prop.GarbageFee.IsPositive() {
				amount = prop.GarbageFee
			}
		}
	}

	current := valueobject.BillingPeriodOf(s.clk.Now())
	start := s.effectiveStartPeriod(tenant, lease, current)

	existing, err := s.garbageRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load existing garbage fees: %w", err)
	}
	present := make(map[valueobject.BillingPeriod]bool, len(existing))
	for _, f := range existing {
		present[f.Period] = true
	}

	for _, period := range start.PeriodsThrough(current) {
		if present[period] {
			continue
		}

		fee, err := billing.NewGarbageFee(tenantID, period, amount)
		if err != nil {
			s.logger.Error("Failed to build garbage fee",
				zap.String("tenant_id", tenantID.String()),
				zap.String("period", period.String()),
				zap.Error(err))
			continue
		}
		if err := s.garbageRepo.Save(ctx, fee); err != nil {
			// A concurrent run may have filled this month already.
			s.logger.Error("Failed to persist garbage fee",
				zap.String("tenant_id", tenantID.String()),
				zap.String("period", period.String()),
				zap.Error(err))
			continue
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, fee.GetDomainEvents()...); err != nil {
				s.logger.Warn("Failed to publish garbage fee event", zap.Error(err))
			}
		}
		fee.ClearDomainEvents()

		result.GeneratedCount++
		result.Fees = append(result.Fees, fee)
	}

	s.logger.Info("Garbage backfill completed",
		zap.String("tenant_id", tenantID.String()),
		zap.String("start_period", start.String()),
		zap.String("end_period", current.String()),
		zap.Int("generated", result.GeneratedCount))

	return result, nil
}

// effectiveStartPeriod picks the first month the tenant owes a garbage
// fee: the active lease's start month, else the tenant's creation month,
// else a bounded window ending at the current month.
func (s *GarbageBackfillService) effectiveStartPeriod(tenant *tenancy.Tenant, lease *tenancy.LeaseAgreement, current valueobject.BillingPeriod) valueobject.BillingPeriod {
	if lease != nil && !lease.StartDate.IsZero() {
		return lease.StartPeriod()
	}
	if !tenant.CreatedAt.IsZero() {
		return valueobject.BillingPeriodOf(tenant.CreatedAt)
	}

	start := current
	for i := 0; i < fallbackBackfillMonths; i++ {
		start = start.Previous()
	}
	return start
}
