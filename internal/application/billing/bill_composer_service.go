package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/rentora/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// BillComposerService generates and previews monthly bills for a property.
// Generation walks every occupied unit of the property and composes one
// bill per tenant; tenants who already have a bill for the period are
// skipped without touching the existing bill. Preview runs the exact same
// charge computation without persisting anything.
type BillComposerService struct {
	propertyRepo property.PropertyRepository
	unitRepo     property.UnitRepository
	chargeRepo   property.RecurringChargeRepository
	tenantRepo   tenancy.TenantRepository
	leaseRepo    tenancy.LeaseRepository
	readingRepo  billing.WaterReadingRepository
	garbageRepo  billing.GarbageFeeRepository
	billRepo     billing.MonthlyBillRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewBillComposerService creates a new BillComposerService
func NewBillComposerService(
	propertyRepo property.PropertyRepository,
	unitRepo property.UnitRepository,
	chargeRepo property.RecurringChargeRepository,
	tenantRepo tenancy.TenantRepository,
	leaseRepo tenancy.LeaseRepository,
	readingRepo billing.WaterReadingRepository,
	garbageRepo billing.GarbageFeeRepository,
	billRepo billing.MonthlyBillRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *BillComposerService {
	return &BillComposerService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		chargeRepo:   chargeRepo,
		tenantRepo:   tenantRepo,
		leaseRepo:    leaseRepo,
		readingRepo:  readingRepo,
		garbageRepo:  garbageRepo,
		billRepo:     billRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// GenerateBillsRequest identifies the property and target billing period
type GenerateBillsRequest struct {
	PropertyID uuid.UUID
	Year       int
	Month      time.Month
}

// GeneratedBill describes one bill produced by a generation run
type GeneratedBill struct {
	BillID      uuid.UUID         `json:"billId"`
	TenantID    uuid.UUID         `json:"tenantId"`
	TenantName  string            `json:"tenantName"`
	UnitNumber  string            `json:"unitNumber"`
	TotalAmount valueobject.Money `json:"totalAmount"`
}

// SkippedTenant describes a tenant excluded from a generation run
type SkippedTenant struct {
	TenantID   uuid.UUID `json:"tenantId"`
	TenantName string    `json:"tenantName"`
	Reason     string    `json:"reason"`
}

// GenerateBillsResult enumerates both successes and skips; a generation
// run never discards partial progress.
type GenerateBillsResult struct {
	Period    valueobject.BillingPeriod `json:"period"`
	Generated []GeneratedBill           `json:"generated"`
	Skipped   []SkippedTenant           `json:"skipped"`
}

// occupant pairs a tenant with the unit and lease binding them to the
// property being billed.
type occupant struct {
	tenant *tenancy.Tenant
	unit   *property.Unit
	lease  *tenancy.LeaseAgreement
}

// GenerateBills composes one bill per occupied unit of the property for
// the target period. Tenant-level failures are logged and recorded as
// skips; they never abort the rest of the batch.
func (s *BillComposerService) GenerateBills(ctx context.Context, req GenerateBillsRequest) (*GenerateBillsResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill_composer", "generate")
	defer span.End()

	period, err := valueobject.NewBillingPeriod(req.Year, req.Month)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrPropertyID, req.PropertyID.String(),
		telemetry.SpanAttrPeriod, period.String(),
	)

	prop, occupants, charges, err := s.loadBatchPreconditions(ctx, req.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &GenerateBillsResult{
		Period:    period,
		Generated: []GeneratedBill{},
		Skipped:   []SkippedTenant{},
	}

	for _, occ := range occupants {
		exists, err := s.billRepo.ExistsForTenantAndPeriod(ctx, occ.tenant.ID, period)
		if err != nil {
			s.logger.Error("Failed to check existing bill",
				zap.String("tenant_id", occ.tenant.ID.String()),
				zap.String("period", period.String()),
				zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: "failed to check existing bill",
			})
			continue
		}
		if exists {
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: "bill already exists",
			})
			continue
		}

		breakdown, err := s.computeCharges(ctx, prop, occ, charges, period)
		if err != nil {
			s.logger.Error("Failed to compute charges",
				zap.String("tenant_id", occ.tenant.ID.String()),
				zap.String("period", period.String()),
				zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: "failed to compute charges",
			})
			continue
		}

		bill, err := billing.NewMonthlyBill(occ.tenant.ID, occ.unit.ID, period, breakdown)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: err.Error(),
			})
			continue
		}

		if err := s.billRepo.Save(ctx, bill); err != nil {
			// Another run may have committed first; the unique index on
			// (tenant, period) turns that race into a skip.
			if isBillExists(err) {
				result.Skipped = append(result.Skipped, SkippedTenant{
					TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
					Reason: "bill already exists",
				})
				continue
			}
			s.logger.Error("Failed to persist bill",
				zap.String("tenant_id", occ.tenant.ID.String()),
				zap.String("period", period.String()),
				zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: "failed to persist bill",
			})
			continue
		}

		s.markGarbageFeeBilled(ctx, occ.tenant.ID, period)
		s.publishEvents(ctx, bill)

		result.Generated = append(result.Generated, GeneratedBill{
			BillID:      bill.ID,
			TenantID:    occ.tenant.ID,
			TenantName:  occ.tenant.FullName,
			UnitNumber:  occ.unit.UnitNumber,
			TotalAmount: bill.TotalAmount,
		})
	}

	s.logger.Info("Bill generation completed",
		zap.String("property_id", req.PropertyID.String()),
		zap.String("period", period.String()),
		zap.Int("generated", len(result.Generated)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// TenantPreview is one tenant's would-be bill with a per-component breakdown
type TenantPreview struct {
	TenantID        uuid.UUID         `json:"tenantId"`
	TenantName      string            `json:"tenantName"`
	UnitNumber      string            `json:"unitNumber"`
	RentAmount      valueobject.Money `json:"rentAmount"`
	WaterAmount     valueobject.Money `json:"waterAmount"`
	GarbageAmount   valueobject.Money `json:"garbageAmount"`
	RecurringAmount valueobject.Money `json:"recurringAmount"`
	TotalAmount     valueobject.Money `json:"totalAmount"`
	BillExists      bool              `json:"billExists"`
}

// PreviewSummary aggregates a preview run
type PreviewSummary struct {
	TotalTenants      int               `json:"totalTenants"`
	WithExistingBills int               `json:"withExistingBills"`
	NewBills          int               `json:"newBills"`
	TotalAmount       valueobject.Money `json:"totalAmount"`
}

// PreviewBillsResult is the dry-run counterpart of GenerateBillsResult;
// like a generation run it enumerates both previewed tenants and the
// tenants it could not price.
type PreviewBillsResult struct {
	Period  valueobject.BillingPeriod `json:"period"`
	Preview []TenantPreview           `json:"preview"`
	Skipped []SkippedTenant           `json:"skipped"`
	Summary PreviewSummary            `json:"summary"`
}

// PreviewBills computes the same charges GenerateBills would persist,
// without writing anything. Tenants with an existing bill are annotated
// rather than skipped; tenant-level failures are recorded as skips, never
// silently dropped.
func (s *BillComposerService) PreviewBills(ctx context.Context, req GenerateBillsRequest) (*PreviewBillsResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill_composer", "preview")
	defer span.End()

	period, err := valueobject.NewBillingPeriod(req.Year, req.Month)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	prop, occupants, charges, err := s.loadBatchPreconditions(ctx, req.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &PreviewBillsResult{
		Period:  period,
		Preview: []TenantPreview{},
		Skipped: []SkippedTenant{},
		Summary: PreviewSummary{TotalAmount: valueobject.ZeroKES()},
	}

	for _, occ := range occupants {
		exists, err := s.billRepo.ExistsForTenantAndPeriod(ctx, occ.tenant.ID, period)
		if err != nil {
			s.logger.Error("Failed to check existing bill",
				zap.String("tenant_id", occ.tenant.ID.String()),
				zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: "failed to check existing bill",
			})
			continue
		}

		breakdown, err := s.computeCharges(ctx, prop, occ, charges, period)
		if err != nil {
			s.logger.Error("Failed to compute charges",
				zap.String("tenant_id", occ.tenant.ID.String()),
				zap.Error(err))
			result.Skipped = append(result.Skipped, SkippedTenant{
				TenantID: occ.tenant.ID, TenantName: occ.tenant.FullName,
				Reason: "failed to compute charges",
			})
			continue
		}

		total := breakdown.Total()
		result.Preview = append(result.Preview, TenantPreview{
			TenantID:        occ.tenant.ID,
			TenantName:      occ.tenant.FullName,
			UnitNumber:      occ.unit.UnitNumber,
			RentAmount:      breakdown.Rent,
			WaterAmount:     breakdown.Water,
			GarbageAmount:   breakdown.Garbage,
			RecurringAmount: breakdown.Recurring,
			TotalAmount:     total,
			BillExists:      exists,
		})

		result.Summary.TotalTenants++
		if exists {
			result.Summary.WithExistingBills++
		} else {
			result.Summary.NewBills++
		}
		result.Summary.TotalAmount = result.Summary.TotalAmount.MustAdd(total)
	}

	return result, nil
}

// BillLine is one persisted bill enriched for operator listings
type BillLine struct {
	BillID          uuid.UUID                 `json:"billId"`
	TenantID        uuid.UUID                 `json:"tenantId"`
	TenantName      string                    `json:"tenantName"`
	UnitNumber      string                    `json:"unitNumber"`
	Period          valueobject.BillingPeriod `json:"period"`
	RentAmount      valueobject.Money         `json:"rentAmount"`
	WaterAmount     valueobject.Money         `json:"waterAmount"`
	GarbageAmount   valueobject.Money         `json:"garbageAmount"`
	RecurringAmount valueobject.Money         `json:"recurringAmount"`
	TotalAmount     valueobject.Money         `json:"totalAmount"`
	AmountPaid      valueobject.Money         `json:"amountPaid"`
	DueDate         time.Time                 `json:"dueDate"`
	Status          billing.BillStatus        `json:"status"`
}

// ListBillsResult is the operator verification listing for one property
// and period
type ListBillsResult struct {
	Period valueobject.BillingPeriod `json:"period"`
	Bills  []BillLine                `json:"bills"`
}

// ListBills returns the persisted bills of one property for a period,
// enriched with tenant names and unit numbers. A missing tenant record
// degrades to an empty name rather than failing the listing.
func (s *BillComposerService) ListBills(ctx context.Context, req GenerateBillsRequest) (*ListBillsResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bill_composer", "list")
	defer span.End()

	period, err := valueobject.NewBillingPeriod(req.Year, req.Month)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.PropertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Property ID is required")
	}

	prop, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if prop == nil {
		return nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
	}

	units, err := s.unitRepo.FindByProperty(ctx, req.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	unitNumbers := make(map[uuid.UUID]string, len(units))
	for _, u := range units {
		unitNumbers[u.ID] = u.UnitNumber
	}

	bills, err := s.billRepo.FindByPeriod(ctx, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load bills: %w", err)
	}

	result := &ListBillsResult{Period: period, Bills: []BillLine{}}
	for _, b := range bills {
		unitNumber, ok := unitNumbers[b.UnitID]
		if !ok {
			// bill belongs to a different property
			continue
		}

		line := BillLine{
			BillID:          b.ID,
			TenantID:        b.TenantID,
			UnitNumber:      unitNumber,
			Period:          b.Period,
			RentAmount:      b.RentAmount,
			WaterAmount:     b.WaterAmount,
			GarbageAmount:   b.GarbageAmount,
			RecurringAmount: b.RecurringAmount,
			TotalAmount:     b.TotalAmount,
			AmountPaid:      b.AmountPaid,
			DueDate:         b.DueDate,
			Status:          b.Status,
		}
		tenant, err := s.tenantRepo.FindByID(ctx, b.TenantID)
		if err == nil && tenant != nil {
			line.TenantName = tenant.FullName
		}
		result.Bills = append(result.Bills, line)
	}

	return result, nil
}

// loadBatchPreconditions fetches the shared inputs of a run. A failure
// here is fatal to the whole operation.
func (s *BillComposerService) loadBatchPreconditions(ctx context.Context, propertyID uuid.UUID) (*property.Property, []occupant, []*property.RecurringCharge, error) {
	if propertyID == uuid.Nil {
		return nil, nil, nil, shared.NewDomainError("INVALID_INPUT", "Property ID is required")
	}

	prop, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load property: %w", err)
	}
	if prop == nil {
		return nil, nil, nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
	}

	units, err := s.unitRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load units: %w", err)
	}

	// The active recurring charge set is loaded once per run, not per tenant.
	charges, err := s.chargeRepo.FindActiveByProperty(ctx, propertyID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load recurring charges: %w", err)
	}

	var occupants []occupant
	for _, u := range units {
		if !u.IsOccupied() {
			continue
		}
		lease, err := s.leaseRepo.FindActiveByUnit(ctx, u.ID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load lease for unit %s: %w", u.ID, err)
		}
		if lease == nil {
			s.logger.Warn("Occupied unit has no active lease",
				zap.String("unit_id", u.ID.String()))
			continue
		}
		tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load tenant %s: %w", lease.TenantID, err)
		}
		if tenant == nil {
			s.logger.Warn("Lease references missing tenant",
				zap.String("lease_id", lease.ID.String()),
				zap.String("tenant_id", lease.TenantID.String()))
			continue
		}
		occupants = append(occupants, occupant{tenant: tenant, unit: u, lease: lease})
	}

	return prop, occupants, charges, nil
}

// computeCharges is the single charge-computation routine shared by
// GenerateBills and PreviewBills.
func (s *BillComposerService) computeCharges(ctx context.Context, prop *property.Property, occ occupant, charges []*property.RecurringCharge, period valueobject.BillingPeriod) (billing.ChargeBreakdown, error) {
	breakdown := billing.ChargeBreakdown{
		Rent:      occ.lease.Rent,
		Water:     valueobject.ZeroKES(),
		Garbage:   valueobject.ZeroKES(),
		Recurring: valueobject.ZeroKES(),
	}

	// Water lookup is keyed by tenant, not unit: a tenant who changed
	// units must not inherit another tenant's reading.
	reading, err := s.readingRepo.FindByTenantAndPeriod(ctx, occ.tenant.ID, period)
	if err != nil {
		return breakdown, fmt.Errorf("failed to load water reading: %w", err)
	}
	if reading != nil {
		breakdown.Water = reading.AmountDue
	}

	if prop.ChargesGarbageFee {
		fee, err := s.garbageRepo.FindByTenantAndPeriod(ctx, occ.tenant.ID, period)
		if err != nil {
			return breakdown, fmt.Errorf("failed to load garbage fee: %w", err)
		}
		switch {
		case fee != nil && fee.Status == billing.GarbageFeeStatusWaived:
			// waived fees bill as zero
		case fee != nil:
			breakdown.Garbage = fee.Amount
		default:
			breakdown.Garbage = prop.GarbageFee
		}
	}

	for _, c := range charges {
		if c.AppliesTo(occ.unit) {
			breakdown.Recurring = breakdown.Recurring.MustAdd(c.Amount)
		}
	}

	return breakdown, nil
}

// markGarbageFeeBilled transitions the period's fee record once its amount
// has been folded into a bill. Best effort: a failure here leaves the fee
// PENDING but never undoes the bill.
func (s *BillComposerService) markGarbageFeeBilled(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) {
	fee, err := s.garbageRepo.FindByTenantAndPeriod(ctx, tenantID, period)
	if err != nil || fee == nil || fee.Status != billing.GarbageFeeStatusPending {
		return
	}
	if err := fee.MarkBilled(); err != nil {
		return
	}
	if err := s.garbageRepo.Update(ctx, fee); err != nil {
		s.logger.Warn("Failed to mark garbage fee billed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("period", period.String()),
			zap.Error(err))
	}
}

func (s *BillComposerService) publishEvents(ctx context.Context, bill *billing.MonthlyBill) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, bill.GetDomainEvents()...); err != nil {
		s.logger.Warn("Failed to publish bill events",
			zap.String("bill_id", bill.ID.String()),
			zap.Error(err))
	}
	bill.ClearDomainEvents()
}

func isBillExists(err error) bool {
	if errors.Is(err, shared.ErrBillExists) {
		return true
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == shared.ErrBillExists.Code
	}
	return false
}
