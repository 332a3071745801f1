package billing

import (
	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const (
	EventTypeWaterReadingRecorded = "billing.water_reading.recorded"
	EventTypeMonthlyBillGenerated = "billing.monthly_bill.generated"
	EventTypeGarbageFeeGenerated  = "billing.garbage_fee.generated"
)

// WaterReadingRecordedEvent fires when a reading is recorded or revised.
// Subscribers patch any already generated bill for the same period.
type WaterReadingRecordedEvent struct {
	shared.BaseDomainEvent
	TenantID      uuid.UUID                 `json:"tenantId"`
	UnitID        uuid.UUID                 `json:"unitId"`
	Period        valueobject.BillingPeriod `json:"period"`
	UnitsConsumed decimal.Decimal           `json:"unitsConsumed"`
	AmountDue     valueobject.Money         `json:"amountDue"`
}

func NewWaterReadingRecordedEvent(r *WaterReading) *WaterReadingRecordedEvent {
	return &WaterReadingRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWaterReadingRecorded, "WaterReading", r.ID),
		TenantID:        r.TenantID,
		UnitID:          r.UnitID,
		Period:          r.Period,
		UnitsConsumed:   r.UnitsConsumed,
		AmountDue:       r.AmountDue,
	}
}

// MonthlyBillGeneratedEvent fires when a bill is composed.
type MonthlyBillGeneratedEvent struct {
	shared.BaseDomainEvent
	TenantID    uuid.UUID                 `json:"tenantId"`
	UnitID      uuid.UUID                 `json:"unitId"`
	Period      valueobject.BillingPeriod `json:"period"`
	TotalAmount valueobject.Money         `json:"totalAmount"`
}

func NewMonthlyBillGeneratedEvent(b *MonthlyBill) *MonthlyBillGeneratedEvent {
	return &MonthlyBillGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMonthlyBillGenerated, "MonthlyBill", b.ID),
		TenantID:        b.TenantID,
		UnitID:          b.UnitID,
		Period:          b.Period,
		TotalAmount:     b.TotalAmount,
	}
}

// GarbageFeeGeneratedEvent fires when a backfill creates a fee record.
type GarbageFeeGeneratedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID                 `json:"tenantId"`
	Period   valueobject.BillingPeriod `json:"period"`
	Amount   valueobject.Money         `json:"amount"`
}

func NewGarbageFeeGeneratedEvent(f *GarbageFee) *GarbageFeeGeneratedEvent {
	return &GarbageFeeGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGarbageFeeGenerated, "GarbageFee", f.ID),
		TenantID:        f.TenantID,
		Period:          f.Period,
		Amount:          f.Amount,
	}
}
