package billing

import (
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// ChargeBreakdown holds the per-component amounts of a monthly bill.
// Generate and Preview both build bills from this structure, so the two
// always agree on what a tenant would be charged.
type ChargeBreakdown struct {
	Rent      valueobject.Money
	Water     valueobject.Money
	Garbage   valueobject.Money
	Recurring valueobject.Money
}

// Total sums the components.
func (c ChargeBreakdown) Total() valueobject.Money {
	return c.Rent.
		MustAdd(c.Water).
		MustAdd(c.Garbage).
		MustAdd(c.Recurring)
}
