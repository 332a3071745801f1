package billing

import (
	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// GarbageFeeStatus represents the lifecycle state of a garbage fee record
type GarbageFeeStatus string

const (
	GarbageFeeStatusPending GarbageFeeStatus = "PENDING"
	GarbageFeeStatusBilled  GarbageFeeStatus = "BILLED"
	GarbageFeeStatusWaived  GarbageFeeStatus = "WAIVED"
)

func (s GarbageFeeStatus) IsValid() bool {
	switch s {
	case GarbageFeeStatusPending, GarbageFeeStatusBilled, GarbageFeeStatusWaived:
		return true
	}
	return false
}

func (s GarbageFeeStatus) String() string {
	return string(s)
}

// GarbageFee is one month's garbage collection charge for a tenant. Fees
// are generated per (tenant, period) from the lease start month onward and
// folded into the monthly bill when it is composed.
type GarbageFee struct {
	shared.BaseAggregateRoot
	TenantID     uuid.UUID                 `json:"tenantId"`
	Period       valueobject.BillingPeriod `json:"period"`
	Amount       valueobject.Money         `json:"amount"`
	IsApplicable bool                      `json:"isApplicable"`
	Status       GarbageFeeStatus          `json:"status"`
}

func NewGarbageFee(tenantID uuid.UUID, period valueobject.BillingPeriod, amount valueobject.Money) (*GarbageFee, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_GARBAGE_FEE", "Tenant ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GARBAGE_FEE", "Garbage fee cannot be negative")
	}

	f := &GarbageFee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Period:            period,
		Amount:            amount,
		IsApplicable:      true,
		Status:            GarbageFeeStatusPending,
	}
	f.AddDomainEvent(NewGarbageFeeGeneratedEvent(f))
	return f, nil
}

// MarkBilled records that the fee has been folded into a monthly bill.
func (f *GarbageFee) MarkBilled() error {
	if f.Status == GarbageFeeStatusWaived {
		return shared.NewDomainError("INVALID_STATE", "Waived garbage fee cannot be billed")
	}
	f.Status = GarbageFeeStatusBilled
	f.IncrementVersion()
	return nil
}

// Waive excuses the fee from billing.
func (f *GarbageFee) Waive() error {
	if f.Status == GarbageFeeStatusBilled {
		return shared.NewDomainError("INVALID_STATE", "Billed garbage fee cannot be waived")
	}
	f.Status = GarbageFeeStatusWaived
	f.IsApplicable = false
	f.IncrementVersion()
	return nil
}

func (f *GarbageFee) GetID() uuid.UUID {
	return f.ID
}
