package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// WaterReadingModel is the persistence model for the WaterReading
// aggregate. The billing period is flattened to (bill_year, bill_month)
// columns so the unique index per unit and month is a plain composite
// index.
type WaterReadingModel struct {
	AggregateModel
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reading_unit_period,priority:1"`
	BillYear        int             `gorm:"not null;uniqueIndex:idx_reading_unit_period,priority:2;index:idx_reading_period,priority:1"`
	BillMonth       int             `gorm:"not null;uniqueIndex:idx_reading_unit_period,priority:3;index:idx_reading_period,priority:2"`
	PreviousReading decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CurrentReading  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	RatePerUnit     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UnitsConsumed   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	AmountDue       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RecordedAt      time.Time       `gorm:"not null"`
	RecordedBy      string          `gorm:"type:varchar(120);not null;default:''"`
}

// TableName returns the table name for GORM
func (WaterReadingModel) TableName() string {
	return "water_readings"
}

// ToDomain converts the persistence model to a domain WaterReading aggregate.
func (m *WaterReadingModel) ToDomain() *billing.WaterReading {
	return &billing.WaterReading{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		TenantID:          m.TenantID,
		UnitID:            m.UnitID,
		Period:            valueobject.BillingPeriod{Year: m.BillYear, Month: time.Month(m.BillMonth)},
		PreviousReading:   m.PreviousReading,
		CurrentReading:    m.CurrentReading,
		RatePerUnit:       valueobject.NewMoneyKES(m.RatePerUnit),
		UnitsConsumed:     m.UnitsConsumed,
		AmountDue:         valueobject.NewMoneyKES(m.AmountDue),
		RecordedAt:        m.RecordedAt,
		RecordedBy:        m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain WaterReading aggregate.
func (m *WaterReadingModel) FromDomain(r *billing.WaterReading) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.TenantID = r.TenantID
	m.UnitID = r.UnitID
	m.BillYear = r.Period.Year
	m.BillMonth = int(r.Period.Month)
	m.PreviousReading = r.PreviousReading
	m.CurrentReading = r.CurrentReading
	m.RatePerUnit = r.RatePerUnit.Amount()
	m.UnitsConsumed = r.UnitsConsumed
	m.AmountDue = r.AmountDue.Amount()
	m.RecordedAt = r.RecordedAt
	m.RecordedBy = r.RecordedBy
}

// WaterReadingModelFromDomain creates a new persistence model from a domain WaterReading.
func WaterReadingModelFromDomain(r *billing.WaterReading) *WaterReadingModel {
	m := &WaterReadingModel{}
	m.FromDomain(r)
	return m
}

// GarbageFeeModel is the persistence model for the GarbageFee aggregate,
// unique per (tenant, bill_year, bill_month).
type GarbageFeeModel struct {
	AggregateModel
	TenantID     uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_garbage_tenant_period,priority:1"`
	BillYear     int                      `gorm:"not null;uniqueIndex:idx_garbage_tenant_period,priority:2;index:idx_garbage_period,priority:1"`
	BillMonth    int                      `gorm:"not null;uniqueIndex:idx_garbage_tenant_period,priority:3;index:idx_garbage_period,priority:2"`
	Amount       decimal.Decimal          `gorm:"type:decimal(12,2);not null;default:0"`
	IsApplicable bool                     `gorm:"not null;default:true"`
	Status       billing.GarbageFeeStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
}

// TableName returns the table name for GORM
func (GarbageFeeModel) TableName() string {
	return "garbage_fees"
}

// ToDomain converts the persistence model to a domain GarbageFee aggregate.
func (m *GarbageFeeModel) ToDomain() *billing.GarbageFee {
	return &billing.GarbageFee{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		TenantID:          m.TenantID,
		Period:            valueobject.BillingPeriod{Year: m.BillYear, Month: time.Month(m.BillMonth)},
		Amount:            valueobject.NewMoneyKES(m.Amount),
		IsApplicable:      m.IsApplicable,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain GarbageFee aggregate.
func (m *GarbageFeeModel) FromDomain(f *billing.GarbageFee) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.TenantID = f.TenantID
	m.BillYear = f.Period.Year
	m.BillMonth = int(f.Period.Month)
	m.Amount = f.Amount.Amount()
	m.IsApplicable = f.IsApplicable
	m.Status = f.Status
}

// GarbageFeeModelFromDomain creates a new persistence model from a domain GarbageFee.
func GarbageFeeModelFromDomain(f *billing.GarbageFee) *GarbageFeeModel {
	m := &GarbageFeeModel{}
	m.FromDomain(f)
	return m
}

// MonthlyBillModel is the persistence model for the MonthlyBill aggregate.
// The unique index on (tenant, bill_year, bill_month) is the final guard
// against double billing: a violation on insert surfaces as ErrBillExists.
type MonthlyBillModel struct {
	AggregateModel
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_bill_tenant_period,priority:1"`
	UnitID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	BillYear        int                `gorm:"not null;uniqueIndex:idx_bill_tenant_period,priority:2;index:idx_bill_period,priority:1"`
	BillMonth       int                `gorm:"not null;uniqueIndex:idx_bill_tenant_period,priority:3;index:idx_bill_period,priority:2"`
	RentAmount      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	WaterAmount     decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	GarbageAmount   decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	RecurringAmount decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount     decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	AmountPaid      decimal.Decimal    `gorm:"type:decimal(12,2);not null;default:0"`
	DueDate         time.Time          `gorm:"not null"`
	Status          billing.BillStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
}

// TableName returns the table name for GORM
func (MonthlyBillModel) TableName() string {
	return "monthly_bills"
}

// ToDomain converts the persistence model to a domain MonthlyBill aggregate.
func (m *MonthlyBillModel) ToDomain() *billing.MonthlyBill {
	return &billing.MonthlyBill{
		BaseAggregateRoot: m.toBaseAggregateRoot(),
		TenantID:          m.TenantID,
		UnitID:            m.UnitID,
		Period:            valueobject.BillingPeriod{Year: m.BillYear, Month: time.Month(m.BillMonth)},
		RentAmount:        valueobject.NewMoneyKES(m.RentAmount),
		WaterAmount:       valueobject.NewMoneyKES(m.WaterAmount),
		GarbageAmount:     valueobject.NewMoneyKES(m.GarbageAmount),
		RecurringAmount:   valueobject.NewMoneyKES(m.RecurringAmount),
		TotalAmount:       valueobject.NewMoneyKES(m.TotalAmount),
		AmountPaid:        valueobject.NewMoneyKES(m.AmountPaid),
		DueDate:           m.DueDate,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain MonthlyBill aggregate.
func (m *MonthlyBillModel) FromDomain(b *billing.MonthlyBill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.TenantID = b.TenantID
	m.UnitID = b.UnitID
	m.BillYear = b.Period.Year
	m.BillMonth = int(b.Period.Month)
	m.RentAmount = b.RentAmount.Amount()
	m.WaterAmount = b.WaterAmount.Amount()
	m.GarbageAmount = b.GarbageAmount.Amount()
	m.RecurringAmount = b.RecurringAmount.Amount()
	m.TotalAmount = b.TotalAmount.Amount()
	m.AmountPaid = b.AmountPaid.Amount()
	m.DueDate = b.DueDate
	m.Status = b.Status
}

// MonthlyBillModelFromDomain creates a new persistence model from a domain MonthlyBill.
func MonthlyBillModelFromDomain(b *billing.MonthlyBill) *MonthlyBillModel {
	m := &MonthlyBillModel{}
	m.FromDomain(b)
	return m
}
