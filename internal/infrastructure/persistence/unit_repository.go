package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/infrastructure/persistence/models"
)

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// Save creates a unit
func (r *GormUnitRepository) Save(ctx context.Context, u *property.Unit) error {
	model := models.UnitModelFromDomain(u)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a unit by its ID, returning nil when absent
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProperty returns all units of a property ordered by unit number
func (r *GormUnitRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*property.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("unit_number ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	return toDomainUnits(unitModels), nil
}

// FindByStatus returns all units in the given occupancy state
func (r *GormUnitRepository) FindByStatus(ctx context.Context, status property.UnitStatus) ([]*property.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	return toDomainUnits(unitModels), nil
}

// CountByStatus counts units in the given occupancy state
func (r *GormUnitRepository) CountByStatus(ctx context.Context, status property.UnitStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UnitModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves changes to an existing unit
func (r *GormUnitRepository) Update(ctx context.Context, u *property.Unit) error {
	model := models.UnitModelFromDomain(u)
	return r.db.WithContext(ctx).Save(model).Error
}

func toDomainUnits(unitModels []models.UnitModel) []*property.Unit {
	units := make([]*property.Unit, len(unitModels))
	for i := range unitModels {
		units[i] = unitModels[i].ToDomain()
	}
	return units
}

var _ property.UnitRepository = (*GormUnitRepository)(nil)
