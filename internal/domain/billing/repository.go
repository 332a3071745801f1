package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// WaterReadingRepository defines the persistence interface for water readings.
// Readings are unique per (unit, period); tenant-keyed lookups serve bill
// composition, which must never attribute a reading to a later occupant.
type WaterReadingRepository interface {
	Save(ctx context.Context, r *WaterReading) error
	FindByID(ctx context.Context, id uuid.UUID) (*WaterReading, error)
	FindByUnitAndPeriod(ctx context.Context, unitID uuid.UUID, period valueobject.BillingPeriod) (*WaterReading, error)
	FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*WaterReading, error)
	FindByPeriod(ctx context.Context, period valueobject.BillingPeriod) ([]*WaterReading, error)
	Update(ctx context.Context, r *WaterReading) error
}

// GarbageFeeRepository defines the persistence interface for garbage fees,
// unique per (tenant, period)
type GarbageFeeRepository interface {
	Save(ctx context.Context, f *GarbageFee) error
	FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*GarbageFee, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*GarbageFee, error)
	CountByPeriod(ctx context.Context, period valueobject.BillingPeriod) (int64, error)
	Update(ctx context.Context, f *GarbageFee) error
}

// MonthlyBillRepository defines the persistence interface for monthly bills.
// Save maps a unique index violation on (tenant, period) to ErrBillExists.
type MonthlyBillRepository interface {
	Save(ctx context.Context, b *MonthlyBill) error
	FindByID(ctx context.Context, id uuid.UUID) (*MonthlyBill, error)
	FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*MonthlyBill, error)
	FindByPeriod(ctx context.Context, period valueobject.BillingPeriod) ([]*MonthlyBill, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*MonthlyBill, error)
	ExistsForTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (bool, error)
	Update(ctx context.Context, b *MonthlyBill) error
}
