package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/shopspring/decimal"
)

const (
	toleranceNormal   = "No tolerance (per-minute deduction)"
	toleranceOvertime = "Overtime session (no tolerance)"
)

type payBreakdown struct {
	Minutes    decimal.Decimal
	Salary     decimal.Decimal
	Deduction  decimal.Decimal
	MinuteRate decimal.Decimal
	Tolerance  string
}

// computePay prices the worked interval [start, end]. Normal sessions lose the
// shortfall against the contracted day at the minute rate; overtime is paid
// straight.
func computePay(sessionType attendance.SessionType, start, end time.Time, profile employee.PayProfile) payBreakdown {
	minutes := decimal.Zero
	if worked := end.Sub(start); worked > 0 {
		minutes = decimal.NewFromInt(worked.Microseconds()).Div(decimal.NewFromInt(time.Minute.Microseconds()))
	}

	rate := profile.MinuteRate()
	gross := minutes.Mul(rate)

	if sessionType == attendance.SessionTypeOvertime {
		return payBreakdown{
			Minutes:    minutes,
			Salary:     decimal.Max(decimal.Zero, gross),
			Deduction:  decimal.Zero,
			MinuteRate: rate,
			Tolerance:  toleranceOvertime,
		}
	}

	expected := profile.WorkHoursPerDay.Mul(decimal.NewFromInt(60))
	shortage := decimal.Max(decimal.Zero, expected.Sub(minutes))
	deduction := shortage.Mul(rate)

	return payBreakdown{
		Minutes:    minutes,
		Salary:     decimal.Max(decimal.Zero, gross.Sub(deduction)),
		Deduction:  deduction,
		MinuteRate: rate,
		Tolerance:  toleranceNormal,
	}
}

type FinalizerImpl struct {
	transactor database.Transactor
	sessions   attendance.SessionRepository
	employees  employee.EmployeeRepository
	periods    payroll.PeriodRepository
	translator *localtime.Translator
}

func NewFinalizer(
	transactor database.Transactor,
	sessions attendance.SessionRepository,
	employees employee.EmployeeRepository,
	periods payroll.PeriodRepository,
	translator *localtime.Translator,
) attendance.Finalizer {
	return &FinalizerImpl{
		transactor: transactor,
		sessions:   sessions,
		employees:  employees,
		periods:    periods,
		translator: translator,
	}
}

// Finalize implements attendance.Finalizer.
func (f *FinalizerImpl) Finalize(ctx context.Context, session attendance.Session, closeAt time.Time) (attendance.FinalizeResult, error) {
	if !session.IsOpen() {
		return attendance.FinalizeResult{}, attendance.ErrSessionAlreadyClosed
	}
	if session.Locked {
		return attendance.FinalizeResult{}, attendance.ErrSessionLocked
	}

	emp, err := f.employees.GetByID(ctx, session.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.FinalizeResult{}, err
		}
		return attendance.FinalizeResult{}, fmt.Errorf("failed to get employee pay profile: %w", err)
	}
	profile := emp.PayProfile()

	localStart := f.translator.ToLocal(session.ClockIn)
	if session.EffectiveWorkStart != nil {
		localStart = f.translator.ToLocal(*session.EffectiveWorkStart)
	}
	localEnd := f.translator.ToLocal(closeAt)

	salaryEnd := localEnd
	if session.Type == attendance.SessionTypeOvertime {
		midnight, err := f.translator.Midnight(session.Date)
		if err != nil {
			return attendance.FinalizeResult{}, err
		}
		if salaryCap := midnight.Add(24 * time.Hour); salaryEnd.After(salaryCap) {
			salaryEnd = salaryCap
		}
	}

	pay := computePay(session.Type, localStart, salaryEnd, profile)

	fin := attendance.Finalization{
		ClockOut:            f.translator.ToAbsolute(localEnd),
		EffectiveWorkStart:  f.translator.ToAbsolute(localStart),
		WorkDurationMinutes: pay.Minutes,
		SalaryEarned:        pay.Salary,
		DeductionAmount:     pay.Deduction,
	}

	err = f.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		period, err := f.periods.FindOpenForDate(ctx, session.Date)
		if err != nil {
			return err
		}
		fin.PayrollPeriodID = period.ID

		applied, err := f.sessions.Finalize(ctx, session.ID, fin)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}

		current, err := f.sessions.GetByID(ctx, session.ID)
		if err != nil {
			return err
		}
		if current.Locked {
			return attendance.ErrSessionLocked
		}
		return attendance.ErrSessionAlreadyClosed
	})
	if err != nil {
		if errors.Is(err, payroll.ErrNoOpenPeriod) ||
			errors.Is(err, attendance.ErrSessionLocked) ||
			errors.Is(err, attendance.ErrSessionAlreadyClosed) {
			return attendance.FinalizeResult{}, err
		}
		return attendance.FinalizeResult{}, fmt.Errorf("failed to finalize session %s: %w", session.ID, err)
	}

	closed := session
	closed.ClockOut = &fin.ClockOut
	closed.EffectiveWorkStart = &fin.EffectiveWorkStart
	closed.WorkDurationMinutes = &fin.WorkDurationMinutes
	closed.SalaryEarned = &fin.SalaryEarned
	closed.DeductionAmount = &fin.DeductionAmount
	closed.PayrollPeriodID = &fin.PayrollPeriodID
	closed.Locked = false

	return attendance.FinalizeResult{
		Session:      closed,
		MinuteRate:   pay.MinuteRate,
		ToleranceMsg: pay.Tolerance,
	}, nil
}
