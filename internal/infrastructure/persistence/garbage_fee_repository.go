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

// GormGarbageFeeRepository implements GarbageFeeRepository using GORM
type GormGarbageFeeRepository struct {
	db *gorm.DB
}

// NewGormGarbageFeeRepository creates a new GormGarbageFeeRepository
func NewGormGarbageFeeRepository(db *gorm.DB) *GormGarbageFeeRepository {
	return &GormGarbageFeeRepository{db: db}
}

// Save creates a garbage fee. The unique index on (tenant, period) makes
// concurrent backfills safe: the loser gets ErrAlreadyExists and the
// month stays filled exactly once.
func (r *GormGarbageFeeRepository) Save(ctx context.Context, f *billing.GarbageFee) error {
	model := models.GarbageFeeModelFromDomain(f)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByTenantAndPeriod returns a tenant's fee for one period, nil when absent
func (r *GormGarbageFeeRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*billing.GarbageFee, error) {
	var model models.GarbageFeeModel
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

// FindByTenant returns all of a tenant's fees in chronological order
func (r *GormGarbageFeeRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.GarbageFee, error) {
	var feeModels []models.GarbageFeeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("bill_year ASC, bill_month ASC").
		Find(&feeModels).Error; err != nil {
		return nil, err
	}

	fees := make([]*billing.GarbageFee, len(feeModels))
	for i := range feeModels {
		fees[i] = feeModels[i].ToDomain()
	}
	return fees, nil
}

// CountByPeriod counts the fee rows recorded for one period
func (r *GormGarbageFeeRepository) CountByPeriod(ctx context.Context, period valueobject.BillingPeriod) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.GarbageFeeModel{}).
		Where("bill_year = ? AND bill_month = ?", period.Year, int(period.Month)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves changes to an existing fee
func (r *GormGarbageFeeRepository) Update(ctx context.Context, f *billing.GarbageFee) error {
	model := models.GarbageFeeModelFromDomain(f)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ billing.GarbageFeeRepository = (*GormGarbageFeeRepository)(nil)
