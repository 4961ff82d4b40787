package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// WorkingDaysPerMonth is the divisor that turns a monthly salary into a daily one.
const WorkingDaysPerMonth = 22

type Employee struct {
	ID              string
	Name            string
	Position        string
	MonthlySalary   decimal.Decimal
	WorkHoursPerDay decimal.Decimal
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PayProfile is the slice of an employee record payroll computation reads.
type PayProfile struct {
	EmployeeID      string
	HourlyRate      decimal.Decimal
	WorkHoursPerDay decimal.Decimal
}

// HourlyRate derives the hourly rate as monthly / (hoursPerDay * 22).
// A non-positive workday yields zero.
func HourlyRate(monthlySalary, workHoursPerDay decimal.Decimal) decimal.Decimal {
	if !workHoursPerDay.IsPositive() {
		return decimal.Zero
	}
	return monthlySalary.Div(workHoursPerDay.Mul(decimal.NewFromInt(WorkingDaysPerMonth)))
}

func (e Employee) PayProfile() PayProfile {
	return PayProfile{
		EmployeeID:      e.ID,
		HourlyRate:      HourlyRate(e.MonthlySalary, e.WorkHoursPerDay),
		WorkHoursPerDay: e.WorkHoursPerDay,
	}
}

// MinuteRate is the hourly rate divided by 60.
func (p PayProfile) MinuteRate() decimal.Decimal {
	return p.HourlyRate.Div(decimal.NewFromInt(60))
}
