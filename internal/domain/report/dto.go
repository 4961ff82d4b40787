package report

import (
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== Daily summary ==========

type DailySummaryItem struct {
	Date                string          `json:"date"`
	WorkMinutesNormal   decimal.Decimal `json:"work_minutes_normal"`
	WorkMinutesOvertime decimal.Decimal `json:"work_minutes_overtime"`
	SalaryNormal        decimal.Decimal `json:"salary_normal"`
	SalaryOvertime      decimal.Decimal `json:"salary_overtime"`
	TotalWorkMinutes    decimal.Decimal `json:"total_work_minutes"`
	TotalSalary         decimal.Decimal `json:"total_salary"`
}

type DailySummaryResponse struct {
	EmployeeID       string             `json:"employee_id"`
	TotalWorkMinutes decimal.Decimal    `json:"total_work_minutes"`
	TotalSalary      decimal.Decimal    `json:"total_salary"`
	Days             []DailySummaryItem `json:"days"`
}

// ========== Payroll slip ==========

type SlipRequest struct {
	PeriodID      string
	EmployeeID    string
	RequireLocked bool
}

func (r *SlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PeriodID) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_id",
			Message: "period_id is required",
		})
	}

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

type EmployeeSummary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Position        string          `json:"position"`
	MonthlySalary   decimal.Decimal `json:"monthly_salary"`
	WorkHoursPerDay decimal.Decimal `json:"work_hours_per_day"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
}

func NewEmployeeSummary(e employee.Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:              e.ID,
		Name:            e.Name,
		Position:        e.Position,
		MonthlySalary:   e.MonthlySalary,
		WorkHoursPerDay: e.WorkHoursPerDay,
		HourlyRate:      e.PayProfile().HourlyRate,
	}
}

type SlipResponse struct {
	Period         payroll.PeriodResponse       `json:"period"`
	Employee       EmployeeSummary              `json:"employee"`
	Attendance     []attendance.SessionResponse `json:"attendance"`
	MinutesWorked  decimal.Decimal              `json:"minutes_worked"`
	MinuteRate     decimal.Decimal              `json:"minute_rate"`
	GrossSalary    decimal.Decimal              `json:"gross_salary"`
	TotalDeduction decimal.Decimal              `json:"total_deduction"`
	TotalAdvances  decimal.Decimal              `json:"total_advances"`
	NetSalary      decimal.Decimal              `json:"net_salary"`
}

// ========== Employee report ==========

type EmployeeReportResponse struct {
	Employee         EmployeeSummary              `json:"employee"`
	Attendance       []attendance.SessionResponse `json:"attendance"`
	Advances         []payroll.AdvanceResponse    `json:"advances"`
	TotalWorkMinutes decimal.Decimal              `json:"total_work_minutes"`
	TotalSalary      decimal.Decimal              `json:"total_salary"`
	TotalAdvances    decimal.Decimal              `json:"total_advances"`
	NetSalary        decimal.Decimal              `json:"net_salary"`
	DailySummary     DailySummaryResponse         `json:"daily_summary"`
}

// ========== Dashboard ==========

type DashboardStatsResponse struct {
	Date               string          `json:"date"`
	MonthStart         string          `json:"month_start"`
	MonthEnd           string          `json:"month_end"`
	TotalEmployees     int64           `json:"total_employees"`
	AttendanceToday    int64           `json:"attendance_today"`
	TotalSalaryMonth   decimal.Decimal `json:"total_salary_month"`
	TotalAdvancesMonth decimal.Decimal `json:"total_advances_month"`
}
