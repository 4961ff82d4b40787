package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	sessions   attendance.SessionRepository
	employees  employee.EmployeeRepository
	periods    payroll.PeriodRepository
	advances   payroll.AdvanceRepository
	sweeper    attendance.Sweeper
	translator *localtime.Translator
	clock      localtime.Clock
}

func NewReportService(
	sessions attendance.SessionRepository,
	employees employee.EmployeeRepository,
	periods payroll.PeriodRepository,
	advances payroll.AdvanceRepository,
	sweeper attendance.Sweeper,
	translator *localtime.Translator,
	clock localtime.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		sessions:   sessions,
		employees:  employees,
		periods:    periods,
		advances:   advances,
		sweeper:    sweeper,
		translator: translator,
		clock:      clock,
	}
}

// buildDailySummary groups finalized sessions by date, newest date first.
func buildDailySummary(employeeID string, sessions []attendance.Session) report.DailySummaryResponse {
	byDate := make(map[string]*report.DailySummaryItem)

	for _, s := range sessions {
		if s.IsOpen() {
			continue
		}

		day, ok := byDate[s.Date]
		if !ok {
			day = &report.DailySummaryItem{
				Date:                s.Date,
				WorkMinutesNormal:   decimal.Zero,
				WorkMinutesOvertime: decimal.Zero,
				SalaryNormal:        decimal.Zero,
				SalaryOvertime:      decimal.Zero,
			}
			byDate[s.Date] = day
		}

		minutes := valueOrZero(s.WorkDurationMinutes)
		salary := valueOrZero(s.SalaryEarned)

		switch s.Type {
		case attendance.SessionTypeOvertime:
			day.WorkMinutesOvertime = day.WorkMinutesOvertime.Add(minutes)
			day.SalaryOvertime = day.SalaryOvertime.Add(salary)
		default:
			day.WorkMinutesNormal = day.WorkMinutesNormal.Add(minutes)
			day.SalaryNormal = day.SalaryNormal.Add(salary)
		}
	}

	summary := report.DailySummaryResponse{
		EmployeeID:       employeeID,
		TotalWorkMinutes: decimal.Zero,
		TotalSalary:      decimal.Zero,
		Days:             make([]report.DailySummaryItem, 0, len(byDate)),
	}

	for _, day := range byDate {
		day.TotalWorkMinutes = day.WorkMinutesNormal.Add(day.WorkMinutesOvertime)
		day.TotalSalary = day.SalaryNormal.Add(day.SalaryOvertime)

		summary.TotalWorkMinutes = summary.TotalWorkMinutes.Add(day.TotalWorkMinutes)
		summary.TotalSalary = summary.TotalSalary.Add(day.TotalSalary)
		summary.Days = append(summary.Days, *day)
	}

	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date > summary.Days[j].Date
	})

	return summary
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toSessionResponses(sessions []attendance.Session) []attendance.SessionResponse {
	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.NewSessionResponse(s))
	}
	return responses
}

func (r *ReportServiceImpl) getEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := r.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetDailySummary implements report.ReportService.
func (r *ReportServiceImpl) GetDailySummary(ctx context.Context, employeeID string) (report.DailySummaryResponse, error) {
	if _, err := r.sweeper.CloseExpired(ctx, employeeID, r.clock.Now()); err != nil {
		return report.DailySummaryResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
	}

	if _, err := r.getEmployee(ctx, employeeID); err != nil {
		return report.DailySummaryResponse{}, err
	}

	sessions, err := r.sessions.ListFinalized(ctx, employeeID, "", "")
	if err != nil {
		return report.DailySummaryResponse{}, fmt.Errorf("failed to list finalized sessions: %w", err)
	}

	return buildDailySummary(employeeID, sessions), nil
}

// GetSlip implements report.ReportService.
func (r *ReportServiceImpl) GetSlip(ctx context.Context, req report.SlipRequest) (report.SlipResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SlipResponse{}, err
	}

	period, err := r.periods.GetByID(ctx, req.PeriodID)
	if err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			return report.SlipResponse{}, err
		}
		return report.SlipResponse{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	if req.RequireLocked && !period.IsLocked() {
		return report.SlipResponse{}, payroll.ErrPeriodNotLocked
	}

	if !period.IsLocked() {
		if _, err := r.sweeper.CloseExpired(ctx, req.EmployeeID, r.clock.Now()); err != nil {
			return report.SlipResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
		}
	}

	var (
		emp      employee.Employee
		sessions []attendance.Session
		advances decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emp, err = r.getEmployee(gctx, req.EmployeeID)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = r.sessions.ListFinalized(gctx, req.EmployeeID, period.StartDate, period.EndDate)
		if err != nil {
			return fmt.Errorf("failed to list finalized sessions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		advances, err = r.advances.SumAmount(gctx, req.EmployeeID, period.StartDate, period.EndDate)
		if err != nil {
			return fmt.Errorf("failed to sum advances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.SlipResponse{}, err
	}

	rate := emp.PayProfile().MinuteRate()
	minutes := decimal.Zero
	deduction := decimal.Zero
	for _, s := range sessions {
		minutes = minutes.Add(valueOrZero(s.WorkDurationMinutes))
		deduction = deduction.Add(valueOrZero(s.DeductionAmount))
	}
	gross := minutes.Mul(rate)
	net := decimal.Max(decimal.Zero, gross.Sub(deduction).Sub(advances))

	return report.SlipResponse{
		Period:         payroll.NewPeriodResponse(period),
		Employee:       report.NewEmployeeSummary(emp),
		Attendance:     toSessionResponses(sessions),
		MinutesWorked:  minutes,
		MinuteRate:     rate,
		GrossSalary:    gross,
		TotalDeduction: deduction,
		TotalAdvances:  advances,
		NetSalary:      net,
	}, nil
}

// GetEmployeeReport implements report.ReportService.
//
// Net here is salary earned minus advances taken and may be negative.
func (r *ReportServiceImpl) GetEmployeeReport(ctx context.Context, employeeID string) (report.EmployeeReportResponse, error) {
	if _, err := r.sweeper.CloseExpired(ctx, employeeID, r.clock.Now()); err != nil {
		return report.EmployeeReportResponse{}, fmt.Errorf("failed to close expired sessions: %w", err)
	}

	emp, err := r.getEmployee(ctx, employeeID)
	if err != nil {
		return report.EmployeeReportResponse{}, err
	}

	var (
		all       []attendance.Session
		finalized []attendance.Session
		advances  []payroll.Advance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = r.sessions.List(gctx, attendance.ListFilter{EmployeeID: employeeID})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		finalized, err = r.sessions.ListFinalized(gctx, employeeID, "", "")
		if err != nil {
			return fmt.Errorf("failed to list finalized sessions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		advances, err = r.advances.List(gctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to list advances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.EmployeeReportResponse{}, err
	}

	summary := buildDailySummary(employeeID, finalized)

	totalAdvances := decimal.Zero
	advanceResponses := make([]payroll.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		totalAdvances = totalAdvances.Add(a.Amount)
		advanceResponses = append(advanceResponses, payroll.NewAdvanceResponse(a))
	}

	return report.EmployeeReportResponse{
		Employee:         report.NewEmployeeSummary(emp),
		Attendance:       toSessionResponses(all),
		Advances:         advanceResponses,
		TotalWorkMinutes: summary.TotalWorkMinutes,
		TotalSalary:      summary.TotalSalary,
		TotalAdvances:    totalAdvances,
		NetSalary:        summary.TotalSalary.Sub(totalAdvances),
		DailySummary:     summary,
	}, nil
}

// GetDashboardStats implements report.ReportService.
func (r *ReportServiceImpl) GetDashboardStats(ctx context.Context) (report.DashboardStatsResponse, error) {
	now := r.clock.Now()
	today := r.translator.LocalDate(now)
	monthStart, monthEnd := r.translator.MonthRange(now)

	stats := report.DashboardStatsResponse{
		Date:       today,
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.employees.CountActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		stats.TotalEmployees = n
		return nil
	})
	g.Go(func() error {
		n, err := r.sessions.CountByDate(gctx, today)
		if err != nil {
			return fmt.Errorf("failed to count attendance: %w", err)
		}
		stats.AttendanceToday = n
		return nil
	})
	g.Go(func() error {
		total, err := r.sessions.SumSalary(gctx, monthStart, monthEnd)
		if err != nil {
			return fmt.Errorf("failed to sum salary: %w", err)
		}
		stats.TotalSalaryMonth = total
		return nil
	})
	g.Go(func() error {
		total, err := r.advances.SumAmount(gctx, "", monthStart, monthEnd)
		if err != nil {
			return fmt.Errorf("failed to sum advances: %w", err)
		}
		stats.TotalAdvancesMonth = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.DashboardStatsResponse{}, err
	}

	return stats, nil
}
