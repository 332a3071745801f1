package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/rentora/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WaterReadingService records meter readings. A second submission for the
// same (unit, period) revises the existing row instead of creating a
// duplicate. Recording publishes an event that patches any bill already
// generated for the period.
type WaterReadingService struct {
	tenantRepo   tenancy.TenantRepository
	leaseRepo    tenancy.LeaseRepository
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	readingRepo  billing.WaterReadingRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewWaterReadingService creates a new WaterReadingService
func NewWaterReadingService(
	tenantRepo tenancy.TenantRepository,
	leaseRepo tenancy.LeaseRepository,
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	readingRepo billing.WaterReadingRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *WaterReadingService {
	return &WaterReadingService{
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		readingRepo:  readingRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// RecordReadingRequest carries one meter submission. RatePerUnit is
// optional; when absent the property's configured water rate applies.
// RecordedBy is a free-text operator label kept on the reading row.
type RecordReadingRequest struct {
	TenantID        uuid.UUID
	Year            int
	Month           time.Month
	PreviousReading decimal.Decimal
	CurrentReading  decimal.Decimal
	RatePerUnit     decimal.Decimal
	RecordedBy      string
}

// RecordReadingResult reports the priced consumption
type RecordReadingResult struct {
	ReadingID     uuid.UUID         `json:"readingId"`
	UnitsConsumed decimal.Decimal   `json:"unitsConsumed"`
	AmountDue     valueobject.Money `json:"amountDue"`
	Revised       bool              `json:"revised"`
}

// RecordReading upserts the reading for the tenant's unit and period.
func (s *WaterReadingService) RecordReading(ctx context.Context, req RecordReadingRequest) (*RecordReadingResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "water_reading", "record")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrTenantID, req.TenantID.String())

	period, err := valueobject.NewBillingPeriod(req.Year, req.Month)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		err := shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	lease, err := s.leaseRepo.FindActiveByTenant(ctx, req.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}
	if lease == nil {
		err := shared.NewDomainError("UNIT_NOT_OCCUPIED", "Tenant has no active lease")
		telemetry.RecordError(span, err)
		return nil, err
	}

	rate, err := s.resolveRate(ctx, lease.UnitID, req.RatePerUnit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	existing, err := s.readingRepo.FindByUnitAndPeriod(ctx, lease.UnitID, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load existing reading: %w", err)
	}

	var reading *billing.WaterReading
	revised := false
	if existing != nil {
		if err := existing.Revise(req.PreviousReading, req.CurrentReading, rate); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		// The row reflects whoever submitted the current meter values.
		existing.RecordedBy = req.RecordedBy
		if err := s.readingRepo.Update(ctx, existing); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to update reading: %w", err)
		}
		reading = existing
		revised = true
	} else {
		reading, err = billing.NewWaterReading(req.TenantID, lease.UnitID, period, req.PreviousReading, req.CurrentReading, rate)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		reading.RecordedBy = req.RecordedBy
		if err := s.readingRepo.Save(ctx, reading); err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to persist reading: %w", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, reading.GetDomainEvents()...); err != nil {
			s.logger.Warn("Failed to publish reading event",
				zap.String("reading_id", reading.ID.String()),
				zap.Error(err))
		}
	}
	reading.ClearDomainEvents()

	s.logger.Info("Water reading recorded",
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("unit_id", lease.UnitID.String()),
		zap.String("period", period.String()),
		zap.String("units_consumed", reading.UnitsConsumed.String()),
		zap.Bool("revised", revised))

	return &RecordReadingResult{
		ReadingID:     reading.ID,
		UnitsConsumed: reading.UnitsConsumed,
		AmountDue:     reading.AmountDue,
		Revised:       revised,
	}, nil
}

func (s *WaterReadingService) resolveRate(ctx context.Context, unitID uuid.UUID, requested decimal.Decimal) (valueobject.Money, error) {
	if requested.IsPositive() {
		return valueobject.NewMoneyKES(requested), nil
	}

	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		return valueobject.ZeroKES(), fmt.Errorf("failed to load unit: %w", err)
	}
	if unit == nil {
		return valueobject.ZeroKES(), shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
	}
	prop, err := s.propertyRepo.FindByID(ctx, unit.PropertyID)
	if err != nil {
		return valueobject.ZeroKES(), fmt.Errorf("failed to load property: %w", err)
	}
	if prop == nil {
		return valueobject.ZeroKES(), shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
	}
	return prop.WaterRatePerUnit, nil
}
