package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL PERIOD DTOs
// ========================================

// CreatePeriodRequest leaves both dates empty to default to the current month.
type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// HasRange reports whether both bounds were given. A partial range falls back
// to the current month.
func (r *CreatePeriodRequest) HasRange() bool {
	return r.StartDate != "" && r.EndDate != ""
}

func (r *CreatePeriodRequest) Validate() error {
	if !r.HasRange() {
		return nil
	}

	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) == 0 && !validator.IsValidDateRange(r.StartDate, r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "start_date must be before or equal to end_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PeriodResponse struct {
	ID        string       `json:"id"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Status    PeriodStatus `json:"status"`
	Label     string       `json:"label"`
	CreatedAt time.Time    `json:"created_at"`
	LockedAt  *time.Time   `json:"locked_at,omitempty"`
}

func NewPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
		Label:     p.Label(),
		CreatedAt: p.CreatedAt,
		LockedAt:  p.LockedAt,
	}
}

type ExportablePeriodResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ========================================
// ADVANCE DTOs
// ========================================

type CreateAdvanceRequest struct {
	EmployeeID string          `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsPositive(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdvanceResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Amount          decimal.Decimal `json:"amount"`
	Note            *string         `json:"note,omitempty"`
	Date            string          `json:"date"`
	PayrollPeriodID *string         `json:"payroll_period_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewAdvanceResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		Amount:          a.Amount,
		Note:            a.Note,
		Date:            a.Date,
		PayrollPeriodID: a.PayrollPeriodID,
		CreatedAt:       a.CreatedAt,
	}
}
