package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/infrastructure/persistence/models"
)

// GormRecurringChargeRepository implements RecurringChargeRepository using GORM
type GormRecurringChargeRepository struct {
	db *gorm.DB
}

// NewGormRecurringChargeRepository creates a new GormRecurringChargeRepository
func NewGormRecurringChargeRepository(db *gorm.DB) *GormRecurringChargeRepository {
	return &GormRecurringChargeRepository{db: db}
}

// Save creates a recurring charge
func (r *GormRecurringChargeRepository) Save(ctx context.Context, c *property.RecurringCharge) error {
	model := models.RecurringChargeModelFromDomain(c)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a recurring charge by its ID, returning nil when absent
func (r *GormRecurringChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.RecurringCharge, error) {
	var model models.RecurringChargeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByProperty returns the active charges of a property
func (r *GormRecurringChargeRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.RecurringCharge, error) {
	var chargeModels []models.RecurringChargeModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND active = ?", propertyID, true).
		Order("name ASC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}

	charges := make([]*property.RecurringCharge, len(chargeModels))
	for i := range chargeModels {
		charges[i] = chargeModels[i].ToDomain()
	}
	return charges, nil
}

// Update saves changes to an existing recurring charge
func (r *GormRecurringChargeRepository) Update(ctx context.Context, c *property.RecurringCharge) error {
	model := models.RecurringChargeModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ property.RecurringChargeRepository = (*GormRecurringChargeRepository)(nil)
