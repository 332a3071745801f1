package billing

import (
	"context"
	"testing"
	"time"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type readingFixture struct {
	tenantRepo   *MockTenantRepository
	leaseRepo    *MockLeaseRepository
	unitRepo     *MockUnitRepository
	propertyRepo *MockPropertyRepository
	readingRepo  *MockWaterReadingRepository
	publisher    *MockEventPublisher

	service *WaterReadingService

	prop   *property.Property
	unit   *property.Unit
	tenant *tenancy.Tenant
	lease  *tenancy.LeaseAgreement
	period valueobject.BillingPeriod
}

func newReadingFixture(t *testing.T) *readingFixture {
	t.Helper()

	f := &readingFixture{
		tenantRepo:   new(MockTenantRepository),
		leaseRepo:    new(MockLeaseRepository),
		unitRepo:     new(MockUnitRepository),
		propertyRepo: new(MockPropertyRepository),
		readingRepo:  new(MockWaterReadingRepository),
		publisher:    new(MockEventPublisher),
	}
	f.service = NewWaterReadingService(
		f.tenantRepo, f.leaseRepo, f.unitRepo, f.propertyRepo,
		f.readingRepo, f.publisher, zap.NewNop(),
	)

	var err error
	f.prop, err = property.NewProperty("Sunrise Court", "Ngong Rd", kes(50), kes(500))
	require.NoError(t, err)
	f.unit, err = property.NewUnit(f.prop.ID, "A-1", property.UnitTypeOneBedroom, kes(15000))
	require.NoError(t, err)
	f.tenant, err = tenancy.NewTenant("Jane Wanjiku", "+254700000001", "")
	require.NoError(t, err)
	f.lease, err = tenancy.NewLeaseAgreement(f.tenant.ID, f.unit.ID, kes(15000),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	f.period = valueobject.BillingPeriod{Year: 2024, Month: time.March}

	f.tenantRepo.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
	f.leaseRepo.On("FindActiveByTenant", mock.Anything, f.tenant.ID).Return(f.lease, nil)

	return f
}

func (f *readingFixture) request(prev, curr, rate int64) RecordReadingRequest {
	return RecordReadingRequest{
		TenantID:        f.tenant.ID,
		Year:            f.period.Year,
		Month:           f.period.Month,
		PreviousReading: decimal.NewFromInt(prev),
		CurrentReading:  decimal.NewFromInt(curr),
		RatePerUnit:     decimal.NewFromInt(rate),
	}
}

func TestRecordReading_CreatesNewReading(t *testing.T) {
	f := newReadingFixture(t)

	f.readingRepo.On("FindByUnitAndPeriod", mock.Anything, f.unit.ID, f.period).Return(nil, nil)
	f.readingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.RecordReading(context.Background(), f.request(100, 130, 50))
	require.NoError(t, err)

	assert.True(t, result.UnitsConsumed.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.AmountDue.Amount().Equal(decimal.NewFromInt(1500)))
	assert.False(t, result.Revised)
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRecordReading_RevisesExistingReading(t *testing.T) {
	f := newReadingFixture(t)

	existing, err := billing.NewWaterReading(f.tenant.ID, f.unit.ID, f.period,
		decimal.NewFromInt(100), decimal.NewFromInt(110), kes(50))
	require.NoError(t, err)
	existing.ClearDomainEvents()

	f.readingRepo.On("FindByUnitAndPeriod", mock.Anything, f.unit.ID, f.period).Return(existing, nil)
	f.readingRepo.On("Update", mock.Anything, existing).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.RecordReading(context.Background(), f.request(100, 130, 50))
	require.NoError(t, err)

	assert.True(t, result.Revised)
	assert.True(t, result.UnitsConsumed.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, existing.ID, result.ReadingID)
	f.readingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRecordReading_KeepsRecordedByOnRow(t *testing.T) {
	f := newReadingFixture(t)

	var saved *billing.WaterReading
	f.readingRepo.On("FindByUnitAndPeriod", mock.Anything, f.unit.ID, f.period).Return(nil, nil)
	f.readingRepo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*billing.WaterReading)
	}).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	req := f.request(100, 130, 50)
	req.RecordedBy = "caretaker-east"
	_, err := f.service.RecordReading(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "caretaker-east", saved.RecordedBy)
	assert.False(t, saved.RecordedAt.IsZero())
}

func TestRecordReading_RevisionReplacesRecordedBy(t *testing.T) {
	f := newReadingFixture(t)

	existing, err := billing.NewWaterReading(f.tenant.ID, f.unit.ID, f.period,
		decimal.NewFromInt(100), decimal.NewFromInt(110), kes(50))
	require.NoError(t, err)
	existing.RecordedBy = "caretaker-east"
	existing.ClearDomainEvents()

	f.readingRepo.On("FindByUnitAndPeriod", mock.Anything, f.unit.ID, f.period).Return(existing, nil)
	f.readingRepo.On("Update", mock.Anything, existing).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	req := f.request(100, 130, 50)
	req.RecordedBy = "caretaker-west"
	_, err = f.service.RecordReading(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "caretaker-west", existing.RecordedBy)
}

func TestRecordReading_ClampsRollbackToZero(t *testing.T) {
	f := newReadingFixture(t)

	f.readingRepo.On("FindByUnitAndPeriod", mock.Anything, f.unit.ID, f.period).Return(nil, nil)
	f.readingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.RecordReading(context.Background(), f.request(130, 100, 50))
	require.NoError(t, err)

	assert.True(t, result.UnitsConsumed.IsZero())
	assert.True(t, result.AmountDue.IsZero())
}

func TestRecordReading_FallsBackToPropertyRate(t *testing.T) {
	f := newReadingFixture(t)

	f.unitRepo.On("FindByID", mock.Anything, f.unit.ID).Return(f.unit, nil)
	f.propertyRepo.On("FindByID", mock.Anything, f.prop.ID).Return(f.prop, nil)
	f.readingRepo.On("FindByUnitAndPeriod", mock.Anything, f.unit.ID, f.period).Return(nil, nil)
	f.readingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	req := f.request(100, 110, 0)
	result, err := f.service.RecordReading(context.Background(), req)
	require.NoError(t, err)

	// 10 units at the property's 50 per unit
	assert.True(t, result.AmountDue.Amount().Equal(decimal.NewFromInt(500)))
}

func TestRecordReading_NoActiveLease(t *testing.T) {
	f := newReadingFixture(t)

	other, err := tenancy.NewTenant("Otieno Omondi", "+254700000002", "")
	require.NoError(t, err)
	f.tenantRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)
	f.leaseRepo.On("FindActiveByTenant", mock.Anything, other.ID).Return(nil, nil)

	req := f.request(100, 110, 50)
	req.TenantID = other.ID
	_, err = f.service.RecordReading(context.Background(), req)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNIT_NOT_OCCUPIED", domainErr.Code)
}
