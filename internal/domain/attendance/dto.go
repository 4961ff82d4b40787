package attendance

import (
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string    `json:"employee_id"`
	Now        time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockInResponse struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employee_id"`
	Date          string      `json:"date"`
	SessionType   SessionType `json:"session_type"`
	ClockIn       time.Time   `json:"clock_in"`
	IsLate        bool        `json:"is_late"`
	LateMinutes   int         `json:"late_minutes"`
	StatusMessage string      `json:"status_message"`
	WorkStartsAt  string      `json:"work_starts_at"`
}

type ClockOutRequest struct {
	EmployeeID string    `json:"employee_id"`
	Now        time.Time `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Date             string          `json:"date"`
	SessionType      SessionType     `json:"session_type"`
	ClockIn          time.Time       `json:"clock_in"`
	ClockOut         time.Time       `json:"clock_out"`
	DurationMinutes  decimal.Decimal `json:"duration_minutes"`
	Salary           decimal.Decimal `json:"salary"`
	Deduction        decimal.Decimal `json:"deduction"`
	MinuteRate       decimal.Decimal `json:"minute_rate"`
	ToleranceApplied string          `json:"tolerance_applied"`
}

type StatusResponse struct {
	EmployeeID  string       `json:"employee_id"`
	Date        string       `json:"date"`
	ClockedIn   bool         `json:"clocked_in"`
	SessionID   *string      `json:"session_id,omitempty"`
	SessionType *SessionType `json:"session_type,omitempty"`
	ClockIn     *time.Time   `json:"clock_in,omitempty"`
}

// ListFilter narrows session listings. Empty fields are ignored.
type ListFilter struct {
	EmployeeID string `json:"employee_id,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" {
		if _, ok := validator.IsValidDate(f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != "" {
		if _, ok := validator.IsValidDate(f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) == 0 && f.StartDate != "" && f.EndDate != "" && !validator.IsValidDateRange(f.StartDate, f.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employee_id"`
	SessionType         SessionType      `json:"session_type"`
	Date                string           `json:"date"`
	ClockIn             time.Time        `json:"clock_in"`
	ClockOut            *time.Time       `json:"clock_out,omitempty"`
	EffectiveWorkStart  *time.Time       `json:"effective_work_start,omitempty"`
	WorkDurationMinutes *decimal.Decimal `json:"work_duration_minutes,omitempty"`
	SalaryEarned        *decimal.Decimal `json:"salary_earned,omitempty"`
	DeductionAmount     *decimal.Decimal `json:"deduction_amount,omitempty"`
	IsLate              bool             `json:"is_late"`
	LateMinutes         int              `json:"late_minutes"`
	PayrollPeriodID     *string          `json:"payroll_period_id,omitempty"`
	PayrollLocked       bool             `json:"payroll_locked"`
}

func NewSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:                  s.ID,
		EmployeeID:          s.EmployeeID,
		SessionType:         s.Type,
		Date:                s.Date,
		ClockIn:             s.ClockIn,
		ClockOut:            s.ClockOut,
		EffectiveWorkStart:  s.EffectiveWorkStart,
		WorkDurationMinutes: s.WorkDurationMinutes,
		SalaryEarned:        s.SalaryEarned,
		DeductionAmount:     s.DeductionAmount,
		IsLate:              s.IsLate,
		LateMinutes:         s.LateMinutes,
		PayrollPeriodID:     s.PayrollPeriodID,
		PayrollLocked:       s.Locked,
	}
}
