package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// UnitStatus represents the occupancy state of a unit
type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "VACANT"
	UnitStatusOccupied    UnitStatus = "OCCUPIED"
	UnitStatusReserved    UnitStatus = "RESERVED"
	UnitStatusMaintenance UnitStatus = "MAINTENANCE"
)

func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusVacant, UnitStatusOccupied, UnitStatusReserved, UnitStatusMaintenance:
		return true
	}
	return false
}

func (s UnitStatus) String() string {
	return string(s)
}

// UnitType classifies a unit by its layout
type UnitType string

const (
	UnitTypeBedsitter    UnitType = "BEDSITTER"
	UnitTypeOneBedroom   UnitType = "ONE_BEDROOM"
	UnitTypeTwoBedroom   UnitType = "TWO_BEDROOM"
	UnitTypeThreeBedroom UnitType = "THREE_BEDROOM"
	UnitTypeShop         UnitType = "SHOP"
)

func (t UnitType) IsValid() bool {
	switch t {
	case UnitTypeBedsitter, UnitTypeOneBedroom, UnitTypeTwoBedroom, UnitTypeThreeBedroom, UnitTypeShop:
		return true
	}
	return false
}

func (t UnitType) String() string {
	return string(t)
}

// Unit is a single rentable space inside a property.
type Unit struct {
	shared.BaseAggregateRoot
	PropertyID  uuid.UUID         `json:"propertyId"`
	UnitNumber  string            `json:"unitNumber"`
	UnitType    UnitType          `json:"unitType"`
	Status      UnitStatus        `json:"status"`
	MonthlyRent valueobject.Money `json:"monthlyRent"`
}

func NewUnit(propertyID uuid.UUID, unitNumber string, unitType UnitType, rent valueobject.Money) (*Unit, error) {
	unitNumber = strings.TrimSpace(unitNumber)
	if unitNumber == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit number is required")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Property ID is required")
	}
	if !unitType.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Invalid unit type: "+unitType.String())
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Monthly rent cannot be negative")
	}

	return &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		UnitNumber:        unitNumber,
		UnitType:          unitType,
		Status:            UnitStatusVacant,
		MonthlyRent:       rent,
	}, nil
}

func (u *Unit) IsOccupied() bool {
	return u.Status == UnitStatusOccupied
}

// MarkOccupied transitions the unit into the occupied state when a
// lease begins.
func (u *Unit) MarkOccupied() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Unit is already occupied")
	}
	if u.Status == UnitStatusMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Unit under maintenance cannot be occupied")
	}
	u.Status = UnitStatusOccupied
	u.IncrementVersion()
	return nil
}

// MarkVacant releases the unit when a lease ends.
func (u *Unit) MarkVacant() error {
	if u.Status == UnitStatusVacant {
		return shared.NewDomainError("INVALID_STATE", "Unit is already vacant")
	}
	u.Status = UnitStatusVacant
	u.IncrementVersion()
	return nil
}

func (u *Unit) GetID() uuid.UUID {
	return u.ID
}
