package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/tenancy"
	"github.com/rentora/backend/internal/infrastructure/persistence/models"
)

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// Save creates a lease agreement
func (r *GormLeaseRepository) Save(ctx context.Context, l *tenancy.LeaseAgreement) error {
	model := models.LeaseModelFromDomain(l)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a lease by ID, returning nil when absent
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.LeaseAgreement, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByUnit returns the active lease on a unit, nil when the unit
// has none. Active leases are unique per unit in practice; if data drift
// ever produces two, the most recent start date wins.
func (r *GormLeaseRepository) FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*tenancy.LeaseAgreement, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("unit_id = ? AND status = ?", unitID, tenancy.LeaseStatusActive).
		Order("start_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByTenant returns the tenant's active lease, nil when none exists
func (r *GormLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*tenancy.LeaseAgreement, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, tenancy.LeaseStatusActive).
		Order("start_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllActive returns every active lease
func (r *GormLeaseRepository) FindAllActive(ctx context.Context) ([]*tenancy.LeaseAgreement, error) {
	var leaseModels []models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", tenancy.LeaseStatusActive).
		Find(&leaseModels).Error; err != nil {
		return nil, err
	}

	leases := make([]*tenancy.LeaseAgreement, len(leaseModels))
	for i := range leaseModels {
		leases[i] = leaseModels[i].ToDomain()
	}
	return leases, nil
}

// Update saves changes to an existing lease
func (r *GormLeaseRepository) Update(ctx context.Context, l *tenancy.LeaseAgreement) error {
	model := models.LeaseModelFromDomain(l)
	return r.db.WithContext(ctx).Save(model).Error
}

var _ tenancy.LeaseRepository = (*GormLeaseRepository)(nil)
