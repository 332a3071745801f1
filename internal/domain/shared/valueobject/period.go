package valueobject

import (
	"fmt"
	"time"
)

// BillingPeriod identifies one monthly invoicing cycle as an explicit
// (year, month) pair. Month-scoped records are always keyed by a
// BillingPeriod rather than a "first of month" date, so two periods are
// equal iff their year and month are equal - no timezone or
// day-of-month ambiguity.
type BillingPeriod struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewBillingPeriod creates a billing period from a year and month
func NewBillingPeriod(year int, month time.Month) (BillingPeriod, error) {
	if month < time.January || month > time.December {
		return BillingPeriod{}, fmt.Errorf("invalid month: %d", month)
	}
	if year < 2000 || year > 2200 {
		return BillingPeriod{}, fmt.Errorf("invalid year: %d", year)
	}
	return BillingPeriod{Year: year, Month: month}, nil
}

// BillingPeriodOf returns the billing period containing the given time
func BillingPeriodOf(t time.Time) BillingPeriod {
	return BillingPeriod{Year: t.Year(), Month: t.Month()}
}

// FirstDay returns the first day of the period at midnight UTC
func (p BillingPeriod) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following period, rolling the year over after December
func (p BillingPeriod) Next() BillingPeriod {
	if p.Month == time.December {
		return BillingPeriod{Year: p.Year + 1, Month: time.January}
	}
	return BillingPeriod{Year: p.Year, Month: p.Month + 1}
}

// Previous returns the preceding period, rolling the year back before January
func (p BillingPeriod) Previous() BillingPeriod {
	if p.Month == time.January {
		return BillingPeriod{Year: p.Year - 1, Month: time.December}
	}
	return BillingPeriod{Year: p.Year, Month: p.Month - 1}
}

// Equals returns true if both periods identify the same month
func (p BillingPeriod) Equals(other BillingPeriod) bool {
	return p.Year == other.Year && p.Month == other.Month
}

// Before returns true if this period precedes the other
func (p BillingPeriod) Before(other BillingPeriod) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// After returns true if this period follows the other
func (p BillingPeriod) After(other BillingPeriod) bool {
	return other.Before(p)
}

// DueDate returns the payment due date for bills of this period:
// the 5th of the following month, midnight UTC
func (p BillingPeriod) DueDate() time.Time {
	next := p.Next()
	return time.Date(next.Year, next.Month, 5, 0, 0, 0, 0, time.UTC)
}

// PeriodsThrough returns every period from p through end inclusive, in
// chronological order. Returns nil if end precedes p.
func (p BillingPeriod) PeriodsThrough(end BillingPeriod) []BillingPeriod {
	if end.Before(p) {
		return nil
	}
	periods := make([]BillingPeriod, 0, 12)
	for cur := p; !cur.After(end); cur = cur.Next() {
		periods = append(periods, cur)
	}
	return periods
}

// String returns the period in YYYY-MM form
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
