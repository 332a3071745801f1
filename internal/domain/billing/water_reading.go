package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// WaterReading records a unit's meter state for one billing period and
// the amount the consumption is worth at the recorded rate. One reading
// exists per (unit, period); recording again replaces the meter values
// and reprices the consumption. The tenant who held the unit when the
// reading was recorded is kept on the row so bill composition never
// attributes a reading to a later occupant.
type WaterReading struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID                 `json:"tenantId"`
	UnitID          uuid.UUID                 `json:"unitId"`
	Period          valueobject.BillingPeriod `json:"period"`
	PreviousReading decimal.Decimal           `json:"previousReading"`
	CurrentReading  decimal.Decimal           `json:"currentReading"`
	RatePerUnit     valueobject.Money         `json:"ratePerUnit"`
	UnitsConsumed   decimal.Decimal           `json:"unitsConsumed"`
	AmountDue       valueobject.Money         `json:"amountDue"`
	RecordedAt      time.Time                 `json:"recordedAt"`
	RecordedBy      string                    `json:"recordedBy,omitempty"`
}

func NewWaterReading(tenantID, unitID uuid.UUID, period valueobject.BillingPeriod, previous, current decimal.Decimal, ratePerUnit valueobject.Money) (*WaterReading, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_READING", "Tenant ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_READING", "Unit ID is required")
	}
	if previous.IsNegative() || current.IsNegative() {
		return nil, shared.NewDomainError("INVALID_READING", "Meter readings cannot be negative")
	}

	r := &WaterReading{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		UnitID:            unitID,
		Period:            period,
	}
	r.apply(previous, current, ratePerUnit)
	r.AddDomainEvent(NewWaterReadingRecordedEvent(r))
	return r, nil
}

// Revise replaces the meter values of an existing reading and reprices the
// consumption. A meter rollback, where the current reading is below the
// previous one, prices as zero consumption rather than a credit.
func (r *WaterReading) Revise(previous, current decimal.Decimal, ratePerUnit valueobject.Money) error {
	if previous.IsNegative() || current.IsNegative() {
		return shared.NewDomainError("INVALID_READING", "Meter readings cannot be negative")
	}
	r.apply(previous, current, ratePerUnit)
	r.IncrementVersion()
	r.AddDomainEvent(NewWaterReadingRecordedEvent(r))
	return nil
}

func (r *WaterReading) apply(previous, current decimal.Decimal, ratePerUnit valueobject.Money) {
	r.PreviousReading = previous
	r.CurrentReading = current
	r.RatePerUnit = ratePerUnit
	consumed := current.Sub(previous)
	if consumed.IsNegative() {
		consumed = decimal.Zero
	}
	r.UnitsConsumed = consumed
	r.AmountDue = ratePerUnit.Multiply(consumed)
	// A revision is a fresh observation of the meter, so the recording
	// timestamp moves with it.
	r.RecordedAt = time.Now().UTC()
}

func (r *WaterReading) GetID() uuid.UUID {
	return r.ID
}
