package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/property"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// PropertyModel is the persistence model for the Property aggregate.
type PropertyModel struct {
	AggregateModel
	Name              string          `gorm:"type:varchar(255);not null"`
	Address           string          `gorm:"type:varchar(500)"`
	WaterRatePerUnit  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GarbageFee        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ChargesGarbageFee bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property aggregate.
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		WaterRatePerUnit:  valueobject.NewMoneyKES(m.WaterRatePerUnit),
		GarbageFee:        valueobject.NewMoneyKES(m.GarbageFee),
		ChargesGarbageFee: m.ChargesGarbageFee,
	}
}

// FromDomain populates the persistence model from a domain Property aggregate.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.WaterRatePerUnit = p.WaterRatePerUnit.Amount()
	m.GarbageFee = p.GarbageFee.Amount()
	m.ChargesGarbageFee = p.ChargesGarbageFee
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// UnitModel is the persistence model for the Unit aggregate.
type UnitModel struct {
	AggregateModel
	PropertyID  uuid.UUID           `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_property_number,priority:1"`
	UnitNumber  string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_unit_property_number,priority:2"`
	UnitType    property.UnitType   `gorm:"type:varchar(30);not null"`
	Status      property.UnitStatus `gorm:"type:varchar(20);not null;default:'VACANT';index"`
	MonthlyRent decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit aggregate.
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		PropertyID:        m.PropertyID,
		UnitNumber:        m.UnitNumber,
		UnitType:          m.UnitType,
		Status:            m.Status,
		MonthlyRent:       valueobject.NewMoneyKES(m.MonthlyRent),
	}
}

// FromDomain populates the persistence model from a domain Unit aggregate.
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.PropertyID = u.PropertyID
	m.UnitNumber = u.UnitNumber
	m.UnitType = u.UnitType
	m.Status = u.Status
	m.MonthlyRent = u.MonthlyRent.Amount()
}

// UnitModelFromDomain creates a new persistence model from a domain Unit.
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// RecurringChargeModel is the persistence model for the RecurringCharge
// aggregate. The unit ID and unit type lists are serialized as JSON since
// they are only ever read back as a whole.
type RecurringChargeModel struct {
	AggregateModel
	PropertyID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Name       string                     `gorm:"type:varchar(100);not null"`
	Amount     decimal.Decimal            `gorm:"type:decimal(12,2);not null;default:0"`
	Mode       property.ApplicabilityMode `gorm:"type:varchar(20);not null"`
	UnitIDs    string                     `gorm:"type:text"`
	UnitTypes  string                     `gorm:"type:text"`
	Active     bool                       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (RecurringChargeModel) TableName() string {
	return "recurring_charges"
}

// ToDomain converts the persistence model to a domain RecurringCharge aggregate.
func (m *RecurringChargeModel) ToDomain() *property.RecurringCharge {
	c := &property.RecurringCharge{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		PropertyID:        m.PropertyID,
		Name:              m.Name,
		Amount:            valueobject.NewMoneyKES(m.Amount),
		Mode:              m.Mode,
		Active:            m.Active,
	}
	if m.UnitIDs != "" {
		// Corrupt rows deserialize to an empty list, which fails closed
		// in applicability matching.
		_ = json.Unmarshal([]byte(m.UnitIDs), &c.UnitIDs)
	}
	if m.UnitTypes != "" {
		_ = json.Unmarshal([]byte(m.UnitTypes), &c.UnitTypes)
	}
	return c
}

// FromDomain populates the persistence model from a domain RecurringCharge aggregate.
func (m *RecurringChargeModel) FromDomain(c *property.RecurringCharge) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.PropertyID = c.PropertyID
	m.Name = c.Name
	m.Amount = c.Amount.Amount()
	m.Mode = c.Mode
	m.Active = c.Active
	m.UnitIDs = marshalList(c.UnitIDs)
	m.UnitTypes = marshalList(c.UnitTypes)
}

// RecurringChargeModelFromDomain creates a new persistence model from a domain RecurringCharge.
func RecurringChargeModelFromDomain(c *property.RecurringCharge) *RecurringChargeModel {
	m := &RecurringChargeModel{}
	m.FromDomain(c)
	return m
}

func marshalList[T any](list []T) string {
	if len(list) == 0 {
		return ""
	}
	data, err := json.Marshal(list)
	if err != nil {
		return ""
	}
	return string(data)
}
