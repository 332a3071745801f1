package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository is a mock implementation of property.PropertyRepository
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Save(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) FindAll(ctx context.Context) ([]*property.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUnitRepository is a mock implementation of property.UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) Save(ctx context.Context, u *property.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.Unit, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByStatus(ctx context.Context, status property.UnitStatus) ([]*property.Unit, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.Unit), args.Error(1)
}

func (m *MockUnitRepository) CountByStatus(ctx context.Context, status property.UnitStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitRepository) Update(ctx context.Context, u *property.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockRecurringChargeRepository is a mock implementation of property.RecurringChargeRepository
type MockRecurringChargeRepository struct {
	mock.Mock
}

func (m *MockRecurringChargeRepository) Save(ctx context.Context, c *property.RecurringCharge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRecurringChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RecurringCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.RecurringCharge), args.Error(1)
}

func (m *MockRecurringChargeRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.RecurringCharge, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*property.RecurringCharge), args.Error(1)
}

func (m *MockRecurringChargeRepository) Update(ctx context.Context, c *property.RecurringCharge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockTenantRepository is a mock implementation of tenancy.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Save(ctx context.Context, t *tenancy.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context) ([]*tenancy.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, t *tenancy.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockLeaseRepository is a mock implementation of tenancy.LeaseRepository
type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) Save(ctx context.Context, l *tenancy.LeaseAgreement) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.LeaseAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*tenancy.LeaseAgreement, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*tenancy.LeaseAgreement, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) FindAllActive(ctx context.Context) ([]*tenancy.LeaseAgreement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tenancy.LeaseAgreement), args.Error(1)
}

func (m *MockLeaseRepository) Update(ctx context.Context, l *tenancy.LeaseAgreement) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockWaterReadingRepository is a mock implementation of billing.WaterReadingRepository
type MockWaterReadingRepository struct {
	mock.Mock
}

func (m *MockWaterReadingRepository) Save(ctx context.Context, r *billing.WaterReading) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockWaterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.WaterReading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WaterReading), args.Error(1)
}

func (m *MockWaterReadingRepository) FindByUnitAndPeriod(ctx context.Context, unitID uuid.UUID, period valueobject.BillingPeriod) (*billing.WaterReading, error) {
	args := m.Called(ctx, unitID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WaterReading), args.Error(1)
}

func (m *MockWaterReadingRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*billing.WaterReading, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.WaterReading), args.Error(1)
}

func (m *MockWaterReadingRepository) FindByPeriod(ctx context.Context, period valueobject.BillingPeriod) ([]*billing.WaterReading, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.WaterReading), args.Error(1)
}

func (m *MockWaterReadingRepository) Update(ctx context.Context, r *billing.WaterReading) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockGarbageFeeRepository is a mock implementation of billing.GarbageFeeRepository
type MockGarbageFeeRepository struct {
	mock.Mock
}

func (m *MockGarbageFeeRepository) Save(ctx context.Context, f *billing.GarbageFee) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockGarbageFeeRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*billing.GarbageFee, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GarbageFee), args.Error(1)
}

func (m *MockGarbageFeeRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.GarbageFee, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.GarbageFee), args.Error(1)
}

func (m *MockGarbageFeeRepository) CountByPeriod(ctx context.Context, period valueobject.BillingPeriod) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGarbageFeeRepository) Update(ctx context.Context, f *billing.GarbageFee) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

// MockMonthlyBillRepository is a mock implementation of billing.MonthlyBillRepository
type MockMonthlyBillRepository struct {
	mock.Mock
}

func (m *MockMonthlyBillRepository) Save(ctx context.Context, b *billing.MonthlyBill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockMonthlyBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MonthlyBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MonthlyBill), args.Error(1)
}

func (m *MockMonthlyBillRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*billing.MonthlyBill, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.MonthlyBill), args.Error(1)
}

func (m *MockMonthlyBillRepository) FindByPeriod(ctx context.Context, period valueobject.BillingPeriod) ([]*billing.MonthlyBill, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.MonthlyBill), args.Error(1)
}

func (m *MockMonthlyBillRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.MonthlyBill, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.MonthlyBill), args.Error(1)
}

func (m *MockMonthlyBillRepository) ExistsForTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (bool, error) {
	args := m.Called(ctx, tenantID, period)
	return args.Bool(0), args.Error(1)
}

func (m *MockMonthlyBillRepository) Update(ctx context.Context, b *billing.MonthlyBill) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
