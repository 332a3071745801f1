package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// ApplicabilityMode determines which units a recurring charge applies to
type ApplicabilityMode string

const (
	// ApplicabilityAllUnits applies the charge to every unit in the property
	ApplicabilityAllUnits ApplicabilityMode = "ALL_UNITS"
	// ApplicabilitySpecificUnits applies the charge to an explicit unit list
	ApplicabilitySpecificUnits ApplicabilityMode = "SPECIFIC_UNITS"
	// ApplicabilityUnitTypes applies the charge to units of the listed types
	ApplicabilityUnitTypes ApplicabilityMode = "UNIT_TYPES"
)

func (m ApplicabilityMode) IsValid() bool {
	switch m {
	case ApplicabilityAllUnits, ApplicabilitySpecificUnits, ApplicabilityUnitTypes:
		return true
	}
	return false
}

func (m ApplicabilityMode) String() string {
	return string(m)
}

// RecurringCharge is a fixed amount added to every monthly bill of the
// units it applies to, such as a security levy or parking fee.
type RecurringCharge struct {
	shared.BaseAggregateRoot
	PropertyID uuid.UUID         `json:"propertyId"`
	Name       string            `json:"name"`
	Amount     valueobject.Money `json:"amount"`
	Mode       ApplicabilityMode `json:"mode"`
	// UnitIDs is consulted when Mode is SPECIFIC_UNITS.
	UnitIDs []uuid.UUID `json:"unitIds,omitempty"`
	// UnitTypes is consulted when Mode is UNIT_TYPES.
	UnitTypes []UnitType `json:"unitTypes,omitempty"`
	Active    bool       `json:"active"`
}

func NewRecurringCharge(propertyID uuid.UUID, name string, amount valueobject.Money, mode ApplicabilityMode) (*RecurringCharge, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Charge name is required")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Property ID is required")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Invalid applicability mode: "+mode.String())
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Charge amount cannot be negative")
	}

	return &RecurringCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Name:              name,
		Amount:            amount,
		Mode:              mode,
		Active:            true,
	}, nil
}

// AppliesTo reports whether this charge should be included on a bill for
// the given unit. Unknown modes never match, so a misconfigured charge is
// excluded rather than billed to everyone.
func (c *RecurringCharge) AppliesTo(unit *Unit) bool {
	if !c.Active || unit == nil || unit.PropertyID != c.PropertyID {
		return false
	}

	switch c.Mode {
	case ApplicabilityAllUnits:
		return true
	case ApplicabilitySpecificUnits:
		for _, id := range c.UnitIDs {
			if id == unit.ID {
				return true
			}
		}
		return false
	case ApplicabilityUnitTypes:
		for _, t := range c.UnitTypes {
			if t == unit.UnitType {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Deactivate stops the charge from appearing on future bills.
func (c *RecurringCharge) Deactivate() {
	c.Active = false
	c.IncrementVersion()
}

func (c *RecurringCharge) GetID() uuid.UUID {
	return c.ID
}
