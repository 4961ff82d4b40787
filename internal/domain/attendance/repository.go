package attendance

import (
	"context"

	"github.com/shopspring/decimal"
)

// SessionRepository defines data access methods for attendance sessions.
type SessionRepository interface {
	// Create inserts a new open session. Returns ErrSessionAlreadyRecorded when
	// the employee already has a session of the same type on that date.
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID returns ErrSessionNotFound when no session has the id.
	GetByID(ctx context.Context, id string) (Session, error)

	// ExistsForDate reports whether the employee has a session of the given type
	// on the date, open or closed.
	ExistsForDate(ctx context.Context, employeeID string, date string, sessionType SessionType) (bool, error)

	// GetOpenSession returns the employee's most recent open session, narrowed to
	// sessionType when it is not nil. Returns ErrNoOpenSession when none exists.
	GetOpenSession(ctx context.Context, employeeID string, sessionType *SessionType) (Session, error)

	// ListOpen returns open, unlocked sessions. An empty employeeID lists all employees.
	ListOpen(ctx context.Context, employeeID string) ([]Session, error)

	// List returns sessions matching the filter, newest date first.
	List(ctx context.Context, filter ListFilter) ([]Session, error)

	// ListFinalized returns closed sessions for the employee dated within
	// [startDate, endDate], oldest first. Empty bounds are open ended.
	ListFinalized(ctx context.Context, employeeID string, startDate string, endDate string) ([]Session, error)

	// Finalize writes f only when the session is still open and unlocked.
	// It reports whether the row changed.
	Finalize(ctx context.Context, id string, f Finalization) (bool, error)

	// LockRange marks every session dated within [startDate, endDate] locked and
	// tied to periodID, finalized or not.
	LockRange(ctx context.Context, periodID string, startDate string, endDate string) (int64, error)

	// CountByDate counts sessions recorded on a date
	CountByDate(ctx context.Context, date string) (int64, error)

	// SumSalary totals salary earned by sessions dated within [startDate, endDate]
	SumSalary(ctx context.Context, startDate string, endDate string) (decimal.Decimal, error)
}
