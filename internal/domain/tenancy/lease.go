package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// LeaseStatus represents the lifecycle state of a lease agreement
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
)

func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusActive, LeaseStatusTerminated, LeaseStatusExpired:
		return true
	}
	return false
}

func (s LeaseStatus) String() string {
	return string(s)
}

func (s LeaseStatus) IsTerminal() bool {
	return s == LeaseStatusTerminated || s == LeaseStatusExpired
}

// LeaseAgreement binds a tenant to a unit for a period of time. The lease
// start date anchors garbage fee backfill: fees are owed from the month
// the lease began.
type LeaseAgreement struct {
	shared.BaseAggregateRoot
	TenantID  uuid.UUID         `json:"tenantId"`
	UnitID    uuid.UUID         `json:"unitId"`
	Rent      valueobject.Money `json:"rent"`
	StartDate time.Time         `json:"startDate"`
	EndDate   *time.Time        `json:"endDate,omitempty"`
	Status    LeaseStatus       `json:"status"`
}

func NewLeaseAgreement(tenantID, unitID uuid.UUID, rent valueobject.Money, startDate time.Time) (*LeaseAgreement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Tenant ID is required")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Unit ID is required")
	}
	if rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease rent cannot be negative")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease start date is required")
	}

	return &LeaseAgreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		UnitID:            unitID,
		Rent:              rent,
		StartDate:         startDate,
		Status:            LeaseStatusActive,
	}, nil
}

func (l *LeaseAgreement) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// StartPeriod is the first billing period the lease is liable for.
func (l *LeaseAgreement) StartPeriod() valueobject.BillingPeriod {
	return valueobject.BillingPeriodOf(l.StartDate)
}

// Terminate ends the lease as of the given date.
func (l *LeaseAgreement) Terminate(endDate time.Time) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Lease is already ended")
	}
	if endDate.Before(l.StartDate) {
		return shared.NewDomainError("INVALID_LEASE", "Lease end date cannot precede start date")
	}
	l.Status = LeaseStatusTerminated
	l.EndDate = &endDate
	l.IncrementVersion()
	return nil
}

func (l *LeaseAgreement) GetID() uuid.UUID {
	return l.ID
}
