package property

import (
	"context"

	"github.com/google/uuid"
)

// PropertyRepository defines the persistence interface for properties
type PropertyRepository interface {
	Save(ctx context.Context, p *Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context) ([]*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines the persistence interface for units
type UnitRepository interface {
	Save(ctx context.Context, u *Unit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]*Unit, error)
	FindByStatus(ctx context.Context, status UnitStatus) ([]*Unit, error)
	CountByStatus(ctx context.Context, status UnitStatus) (int64, error)
	Update(ctx context.Context, u *Unit) error
}

// RecurringChargeRepository defines the persistence interface for recurring charges
type RecurringChargeRepository interface {
	Save(ctx context.Context, c *RecurringCharge) error
	FindByID(ctx context.Context, id uuid.UUID) (*RecurringCharge, error)
	FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) ([]*RecurringCharge, error)
	Update(ctx context.Context, c *RecurringCharge) error
}
