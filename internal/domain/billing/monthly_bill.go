package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// BillStatus represents the payment state of a monthly bill
type BillStatus string

const (
	BillStatusPending   BillStatus = "PENDING"
	BillStatusPartial   BillStatus = "PARTIAL"
	BillStatusPaid      BillStatus = "PAID"
	BillStatusCancelled BillStatus = "CANCELLED"
)

func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPartial, BillStatusPaid, BillStatusCancelled:
		return true
	}
	return false
}

func (s BillStatus) String() string {
	return string(s)
}

func (s BillStatus) IsTerminal() bool {
	return s == BillStatusPaid || s == BillStatusCancelled
}

// MonthlyBill is one tenant's invoice for one billing period. At most one
// bill exists per (tenant, period); the storage layer enforces this with a
// unique index. The total is the sum of the component amounts.
type MonthlyBill struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID                 `json:"tenantId"`
	UnitID          uuid.UUID                 `json:"unitId"`
	Period          valueobject.BillingPeriod `json:"period"`
	RentAmount      valueobject.Money         `json:"rentAmount"`
	WaterAmount     valueobject.Money         `json:"waterAmount"`
	GarbageAmount   valueobject.Money         `json:"garbageAmount"`
	RecurringAmount valueobject.Money         `json:"recurringAmount"`
	TotalAmount     valueobject.Money         `json:"totalAmount"`
	AmountPaid      valueobject.Money         `json:"amountPaid"`
	DueDate         time.Time                 `json:"dueDate"`
	Status          BillStatus                `json:"status"`
}

// NewMonthlyBill composes a bill from its charge components. The due date
// falls on the 5th of the month after the billing period.
func NewMonthlyBill(tenantID, unitID uuid.UUID, period valueobject.BillingPeriod, charges ChargeBreakdown) (*MonthlyBill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Tenant ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BILL", "Unit ID is required")
	}

	b := &MonthlyBill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		UnitID:            unitID,
		Period:            period,
		RentAmount:        charges.Rent,
		WaterAmount:       charges.Water,
		GarbageAmount:     charges.Garbage,
		RecurringAmount:   charges.Recurring,
		TotalAmount:       charges.Total(),
		AmountPaid:        valueobject.ZeroKES(),
		DueDate:           period.DueDate(),
		Status:            BillStatusPending,
	}
	b.AddDomainEvent(NewMonthlyBillGeneratedEvent(b))
	return b, nil
}

// ApplyWaterAmount replaces the bill's water component, recomputing the
// total from the stored components. Used when a reading arrives or is
// revised after the bill was generated.
func (b *MonthlyBill) ApplyWaterAmount(water valueobject.Money) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a settled bill")
	}
	b.WaterAmount = water
	b.recomputeTotal()
	b.IncrementVersion()
	return nil
}

func (b *MonthlyBill) recomputeTotal() {
	total := b.RentAmount.
		MustAdd(b.WaterAmount).
		MustAdd(b.GarbageAmount).
		MustAdd(b.RecurringAmount)
	b.TotalAmount = total
}

// RecordPayment applies a payment and moves the bill to PARTIAL or PAID.
func (b *MonthlyBill) RecordPayment(amount valueobject.Money) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Bill is already settled")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}

	paid, err := b.AmountPaid.Add(amount)
	if err != nil {
		return err
	}
	b.AmountPaid = paid
	overpaid, err := paid.GreaterThan(b.TotalAmount)
	if err != nil {
		return err
	}
	if overpaid || paid.Equals(b.TotalAmount) {
		b.Status = BillStatusPaid
	} else {
		b.Status = BillStatusPartial
	}
	b.IncrementVersion()
	return nil
}

// Cancel voids an unpaid bill.
func (b *MonthlyBill) Cancel() error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Bill is already settled")
	}
	b.Status = BillStatusCancelled
	b.IncrementVersion()
	return nil
}

// IsOverdueAt reports whether the bill remains unpaid past its due date.
func (b *MonthlyBill) IsOverdueAt(now time.Time) bool {
	if b.Status == BillStatusPaid || b.Status == BillStatusCancelled {
		return false
	}
	return now.After(b.DueDate)
}

// Balance is the unpaid remainder of the bill.
func (b *MonthlyBill) Balance() valueobject.Money {
	bal, err := b.TotalAmount.Subtract(b.AmountPaid)
	if err != nil {
		return valueobject.ZeroKES()
	}
	return bal
}

func (b *MonthlyBill) GetID() uuid.UUID {
	return b.ID
}
