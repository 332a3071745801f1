package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/clock"
	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type backfillFixture struct {
	tenantRepo   *MockTenantRepository
	leaseRepo    *MockLeaseRepository
	unitRepo     *MockUnitRepository
	propertyRepo *MockPropertyRepository
	garbageRepo  *MockGarbageFeeRepository
	clk          *clock.Fake

	service *GarbageBackfillService

	prop   *property.Property
	unit   *property.Unit
	tenant *tenancy.Tenant
	lease  *tenancy.LeaseAgreement
}

func newBackfillFixture(t *testing.T, now time.Time) *backfillFixture {
	t.Helper()

	f := &backfillFixture{
		tenantRepo:   new(MockTenantRepository),
		leaseRepo:    new(MockLeaseRepository),
		unitRepo:     new(MockUnitRepository),
		propertyRepo: new(MockPropertyRepository),
		garbageRepo:  new(MockGarbageFeeRepository),
		clk:          clock.NewFake(now),
	}
	f.service = NewGarbageBackfillService(
		f.tenantRepo, f.leaseRepo, f.unitRepo, f.propertyRepo,
		f.garbageRepo, nil, f.clk, zap.NewNop(),
	)

	var err error
	f.prop, err = property.NewProperty("Sunrise Court", "Ngong Rd", kes(50), kes(500))
	require.NoError(t, err)
	f.unit, err = property.NewUnit(f.prop.ID, "A-1", property.UnitTypeOneBedroom, kes(15000))
	require.NoError(t, err)
	require.NoError(t, f.unit.MarkOccupied())
	f.tenant, err = tenancy.NewTenant("Jane Wanjiku", "+254700000001", "")
	require.NoError(t, err)
	f.lease, err = tenancy.NewLeaseAgreement(f.tenant.ID, f.unit.ID, kes(15000),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	return f
}

func (f *backfillFixture) expectLookups() {
	f.tenantRepo.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
	f.leaseRepo.On("FindActiveByTenant", mock.Anything, f.tenant.ID).Return(f.lease, nil)
	f.unitRepo.On("FindByID", mock.Anything, f.unit.ID).Return(f.unit, nil)
	f.propertyRepo.On("FindByID", mock.Anything, f.prop.ID).Return(f.prop, nil)
}

func TestBackfill_FillsLeaseStartThroughCurrentMonth(t *testing.T) {
	// Lease starts 2024-01-01, today is 2024-04-10: four months owed.
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	f.expectLookups()
	f.garbageRepo.On("FindByTenant", mock.Anything, f.tenant.ID).Return([]*billing.GarbageFee{}, nil)
	f.garbageRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Backfill(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, result.GeneratedCount)
	require.Len(t, result.Fees, 4)

	wantMonths := []time.Month{time.January, time.February, time.March, time.April}
	for i, fee := range result.Fees {
		assert.Equal(t, valueobject.BillingPeriod{Year: 2024, Month: wantMonths[i]}, fee.Period)
		assert.True(t, fee.Amount.Amount().Equal(kes(500).Amount()), "property default applies")
		assert.Equal(t, billing.GarbageFeeStatusPending, fee.Status)
		assert.True(t, fee.IsApplicable)
	}
}

func TestBackfill_IsIdempotent(t *testing.T) {
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	f.expectLookups()

	existing := make([]*billing.GarbageFee, 0, 4)
	for _, m := range []time.Month{time.January, time.February, time.March, time.April} {
		fee, err := billing.NewGarbageFee(f.tenant.ID, valueobject.BillingPeriod{Year: 2024, Month: m}, kes(500))
		require.NoError(t, err)
		existing = append(existing, fee)
	}
	f.garbageRepo.On("FindByTenant", mock.Anything, f.tenant.ID).Return(existing, nil)

	result, err := f.service.Backfill(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.GeneratedCount)
	f.garbageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBackfill_FillsOnlyGaps(t *testing.T) {
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	f.expectLookups()

	feb, err := billing.NewGarbageFee(f.tenant.ID, valueobject.BillingPeriod{Year: 2024, Month: time.February}, kes(500))
	require.NoError(t, err)
	f.garbageRepo.On("FindByTenant", mock.Anything, f.tenant.ID).Return([]*billing.GarbageFee{feb}, nil)
	f.garbageRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Backfill(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.GeneratedCount)
	months := make([]time.Month, 0, 3)
	for _, fee := range result.Fees {
		months = append(months, fee.Period.Month)
	}
	assert.Equal(t, []time.Month{time.January, time.March, time.April}, months)
}

func TestBackfill_VacantUnitIsHardGate(t *testing.T) {
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, f.unit.MarkVacant())

	f.tenantRepo.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
	f.leaseRepo.On("FindActiveByTenant", mock.Anything, f.tenant.ID).Return(f.lease, nil)
	f.unitRepo.On("FindByID", mock.Anything, f.unit.ID).Return(f.unit, nil)

	result, err := f.service.Backfill(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.GeneratedCount)
	f.garbageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBackfill_PerMonthFailureDoesNotAbort(t *testing.T) {
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	f.expectLookups()
	f.garbageRepo.On("FindByTenant", mock.Anything, f.tenant.ID).Return([]*billing.GarbageFee{}, nil)

	febPeriod := valueobject.BillingPeriod{Year: 2024, Month: time.February}
	f.garbageRepo.On("Save", mock.Anything, mock.MatchedBy(func(fee *billing.GarbageFee) bool {
		return fee.Period == febPeriod
	})).Return(errors.New("duplicate key"))
	f.garbageRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Backfill(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, result.GeneratedCount)
}

func TestBackfill_NoLeaseFallsBackToCreationMonth(t *testing.T) {
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	f.tenant.CreatedAt = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	f.tenantRepo.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
	f.leaseRepo.On("FindActiveByTenant", mock.Anything, f.tenant.ID).Return(nil, nil)
	f.garbageRepo.On("FindByTenant", mock.Anything, f.tenant.ID).Return([]*billing.GarbageFee{}, nil)
	f.garbageRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Backfill(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	// March and April, priced at the fallback amount without a property.
	assert.Equal(t, 2, result.GeneratedCount)
	for _, fee := range result.Fees {
		assert.True(t, fee.Amount.Equals(fallbackGarbageFee))
	}
}

func TestBackfill_TenantNotFound(t *testing.T) {
	f := newBackfillFixture(t, time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
	missing := uuid.New()
	f.tenantRepo.On("FindByID", mock.Anything, missing).Return(nil, nil)

	_, err := f.service.Backfill(context.Background(), missing)
	assert.Error(t, err)
}
