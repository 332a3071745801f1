package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/rentora/backend/internal/infrastructure/persistence/models"
)

// GormMonthlyBillRepository implements MonthlyBillRepository using GORM
type GormMonthlyBillRepository struct {
	db *gorm.DB
}

// NewGormMonthlyBillRepository creates a new GormMonthlyBillRepository
func NewGormMonthlyBillRepository(db *gorm.DB) *GormMonthlyBillRepository {
	return &GormMonthlyBillRepository{db: db}
}

// Save creates a monthly bill. A unique index violation on
// (tenant, period) maps to ErrBillExists so generation runs racing each
// other both complete, with one of them skipping the tenant.
func (r *GormMonthlyBillRepository) Save(ctx context.Context, b *billing.MonthlyBill) error {
	model := models.MonthlyBillModelFromDomain(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrBillExists
		}
		return err
	}
	return nil
}

// FindByID finds a bill by ID, returning nil when absent
func (r *GormMonthlyBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.MonthlyBill, error) {
	var model models.MonthlyBillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantAndPeriod returns a tenant's bill for one period, nil when absent
func (r *GormMonthlyBillRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*billing.MonthlyBill, error) {
	var model models.MonthlyBillModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND bill_year = ? AND bill_month = ?", tenantID, period.Year, int(period.Month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod returns all bills generated for one period
func (r *GormMonthlyBillRepository) FindByPeriod(ctx context.Context, period valueobject.BillingPeriod) ([]*billing.MonthlyBill, error) {
	var billModels []models.MonthlyBillModel
	if err := r.db.WithContext(ctx).
		Where("bill_year = ? AND bill_month = ?", period.Year, int(period.Month)).
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// FindByTenant returns a tenant's bills, most recent period first
func (r *GormMonthlyBillRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.MonthlyBill, error) {
	var billModels []models.MonthlyBillModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("bill_year DESC, bill_month DESC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}
	return toDomainBills(billModels), nil
}

// ExistsForTenantAndPeriod reports whether a bill row already exists
func (r *GormMonthlyBillRepository) ExistsForTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MonthlyBillModel{}).
		Where("tenant_id = ? AND bill_year = ? AND bill_month = ?", tenantID, period.Year, int(period.Month)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves changes to an existing bill
func (r *GormMonthlyBillRepository) Update(ctx context.Context, b *billing.MonthlyBill) error {
	model := models.MonthlyBillModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainBills(billModels []models.MonthlyBillModel) []*billing.MonthlyBill {
	bills := make([]*billing.MonthlyBill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills
}

var _ billing.MonthlyBillRepository = (*GormMonthlyBillRepository)(nil)
