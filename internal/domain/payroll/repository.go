package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PeriodRepository interface {
	// Create inserts a period. Returns ErrPeriodOverlap when the store rejects an
	// overlapping open range.
	Create(ctx context.Context, period Period) (Period, error)

	// GetByID returns ErrPeriodNotFound when no period has the id.
	GetByID(ctx context.Context, id string) (Period, error)

	// List returns every period, latest start date first
	List(ctx context.Context) ([]Period, error)

	// FindOpenForDate returns the open period covering date, or ErrNoOpenPeriod.
	// Inside a transaction the period row stays share-locked until commit.
	FindOpenForDate(ctx context.Context, date string) (Period, error)

	// HasOpenOverlap reports whether any open period intersects [startDate, endDate]
	HasOpenOverlap(ctx context.Context, startDate string, endDate string) (bool, error)

	// MarkLocked moves an open period to locked. It reports false when the period
	// was not open.
	MarkLocked(ctx context.Context, id string, lockedAt time.Time) (bool, error)

	// ListLocked returns locked periods, latest end date first. limit <= 0 returns all.
	ListLocked(ctx context.Context, limit int) ([]Period, error)
}

type AdvanceRepository interface {
	// Create inserts an advance record
	Create(ctx context.Context, advance Advance) (Advance, error)

	// List returns advances newest date first. An empty employeeID lists everyone.
	List(ctx context.Context, employeeID string) ([]Advance, error)

	// SumAmount totals advances for the employee dated within [startDate, endDate].
	// Empty arguments widen the scope to all employees or an open-ended range.
	SumAmount(ctx context.Context, employeeID string, startDate string, endDate string) (decimal.Decimal, error)
}
