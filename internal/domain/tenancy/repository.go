package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository defines the persistence interface for tenants
type TenantRepository interface {
	Save(ctx context.Context, t *Tenant) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindAll(ctx context.Context) ([]*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
}

// LeaseRepository defines the persistence interface for lease agreements
type LeaseRepository interface {
	Save(ctx context.Context, l *LeaseAgreement) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaseAgreement, error)
	FindActiveByUnit(ctx context.Context, unitID uuid.UUID) (*LeaseAgreement, error)
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) (*LeaseAgreement, error)
	FindAllActive(ctx context.Context) ([]*LeaseAgreement, error)
	Update(ctx context.Context, l *LeaseAgreement) error
}
