package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Property is a building or compound that groups rentable units.
// The property carries the utility rates applied to every unit it
// contains: the per-unit water rate and the flat monthly garbage fee.
type Property struct {
	shared.BaseAggregateRoot
	Name              string            `json:"name"`
	Address           string            `json:"address"`
	WaterRatePerUnit  valueobject.Money `json:"waterRatePerUnit"`
	GarbageFee        valueobject.Money `json:"garbageFee"`
	ChargesGarbageFee bool              `json:"chargesGarbageFee"`
	Units             []Unit            `json:"units,omitempty"`
}

func NewProperty(name, address string, waterRate, garbageFee valueobject.Money) (*Property, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property name is required")
	}
	if waterRate.IsNegative() || garbageFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property rates cannot be negative")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           strings.TrimSpace(address),
		WaterRatePerUnit:  waterRate,
		GarbageFee:        garbageFee,
		ChargesGarbageFee: true,
	}, nil
}

// DisableGarbageBilling turns off garbage fees for the whole property.
func (p *Property) DisableGarbageBilling() {
	p.ChargesGarbageFee = false
	p.IncrementVersion()
}

// UpdateRates changes the utility rates going forward. Already generated
// bills are not recomputed.
func (p *Property) UpdateRates(waterRate, garbageFee valueobject.Money) error {
	if waterRate.IsNegative() || garbageFee.IsNegative() {
		return shared.NewDomainError("INVALID_PROPERTY", "Property rates cannot be negative")
	}
	p.WaterRatePerUnit = waterRate
	p.GarbageFee = garbageFee
	p.IncrementVersion()
	return nil
}

// WaterAmountFor prices a consumed volume at this property's rate.
func (p *Property) WaterAmountFor(units decimal.Decimal) valueobject.Money {
	return p.WaterRatePerUnit.Multiply(units)
}

func (p *Property) GetID() uuid.UUID {
	return p.ID
}
