package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionType string

const (
	SessionTypeNormal   SessionType = "normal"
	SessionTypeOvertime SessionType = "overtime"
)

func (t SessionType) IsValid() bool {
	return t == SessionTypeNormal || t == SessionTypeOvertime
}

// Session is one continuous clock-in to clock-out interval.
type Session struct {
	ID                  string
	EmployeeID          string
	Type                SessionType
	Date                string
	ClockIn             time.Time
	ClockOut            *time.Time
	EffectiveWorkStart  *time.Time
	WorkDurationMinutes *decimal.Decimal
	SalaryEarned        *decimal.Decimal
	DeductionAmount     *decimal.Decimal
	IsLate              bool
	LateMinutes         int
	PayrollPeriodID     *string
	Locked              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsOpen reports whether the session has not been clocked out yet.
func (s Session) IsOpen() bool {
	return s.ClockOut == nil
}

// Finalization is the field set written, all at once, when a session closes.
type Finalization struct {
	ClockOut            time.Time
	EffectiveWorkStart  time.Time
	WorkDurationMinutes decimal.Decimal
	SalaryEarned        decimal.Decimal
	DeductionAmount     decimal.Decimal
	PayrollPeriodID     string
}

// FinalizeResult describes a session that was just closed.
type FinalizeResult struct {
	Session      Session
	MinuteRate   decimal.Decimal
	ToleranceMsg string
}
