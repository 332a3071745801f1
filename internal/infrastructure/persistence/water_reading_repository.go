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

// GormWaterReadingRepository implements WaterReadingRepository using GORM
type GormWaterReadingRepository struct {
	db *gorm.DB
}

// NewGormWaterReadingRepository creates a new GormWaterReadingRepository
func NewGormWaterReadingRepository(db *gorm.DB) *GormWaterReadingRepository {
	return &GormWaterReadingRepository{db: db}
}

// Save creates a water reading. A second reading for the same unit and
// period violates the unique index and surfaces as ErrAlreadyExists;
// callers revise the existing reading instead.
func (r *GormWaterReadingRepository) Save(ctx context.Context, reading *billing.WaterReading) error {
	model := models.WaterReadingModelFromDomain(reading)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a reading by ID, returning nil when absent
func (r *GormWaterReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.WaterReading, error) {
	var model models.WaterReadingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUnitAndPeriod returns the reading recorded against a unit for one
// period, nil when no reading exists
func (r *GormWaterReadingRepository) FindByUnitAndPeriod(ctx context.Context, unitID uuid.UUID, period valueobject.BillingPeriod) (*billing.WaterReading, error) {
	var model models.WaterReadingModel
	if err := r.db.WithContext(ctx).
		Where("unit_id = ? AND bill_year = ? AND bill_month = ?", unitID, period.Year, int(period.Month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantAndPeriod returns the reading attributed to a tenant for one
// period, nil when no reading exists
func (r *GormWaterReadingRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period valueobject.BillingPeriod) (*billing.WaterReading, error) {
	var model models.WaterReadingModel
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

// FindByPeriod returns every reading recorded for one period
func (r *GormWaterReadingRepository) FindByPeriod(ctx context.Context, period valueobject.BillingPeriod) ([]*billing.WaterReading, error) {
	var readingModels []models.WaterReadingModel
	if err := r.db.WithContext(ctx).
		Where("bill_year = ? AND bill_month = ?", period.Year, int(period.Month)).
		Find(&readingModels).Error; err != nil {
		return nil, err
	}

	readings := make([]*billing.WaterReading, len(readingModels))
	for i := range readingModels {
		readings[i] = readingModels[i].ToDomain()
	}
	return readings, nil
}

// Update saves changes to an existing reading
func (r *GormWaterReadingRepository) Update(ctx context.Context, reading *billing.WaterReading) error {
	model := models.WaterReadingModelFromDomain(reading)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ billing.WaterReadingRepository = (*GormWaterReadingRepository)(nil)
