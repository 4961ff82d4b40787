package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "open"
	PeriodStatusLocked PeriodStatus = "locked"
)

// Period is an accounting window. Dates are inclusive local calendar dates.
type Period struct {
	ID        string
	StartDate string
	EndDate   string
	Status    PeriodStatus
	CreatedAt time.Time
	LockedAt  *time.Time
}

func (p Period) IsLocked() bool {
	return p.Status == PeriodStatusLocked
}

// Covers reports whether date falls within the period.
func (p Period) Covers(date string) bool {
	return p.StartDate <= date && date <= p.EndDate
}

// Label renders the period's starting month, e.g. "Jan 2026".
func (p Period) Label() string {
	start, err := time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return p.StartDate
	}
	return start.Format("Jan 2006")
}

// Advance is a cash advance against future pay.
type Advance struct {
	ID              string
	EmployeeID      string
	Amount          decimal.Decimal
	Note            *string
	Date            string
	PayrollPeriodID *string
	CreatedAt       time.Time
}
