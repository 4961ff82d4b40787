package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/report"
	attendancesvc "github.com/cmlabs-hris/payroll-attendance-go/internal/service/attendance"
	payrollsvc "github.com/cmlabs-hris/payroll-attendance-go/internal/service/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	*testutil.Store
	attendance attendance.AttendanceService
	periods    payroll.PeriodService
	advances   payroll.AdvanceService
	reports    report.ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore(t)
	finalizer := attendancesvc.NewFinalizer(store.Transactor, store.Sessions, store.Employees, store.Periods, store.Translator)
	sweeper := attendancesvc.NewSweeper(store.Sessions, finalizer, store.Translator)

	return &fixture{
		Store:      store,
		attendance: attendancesvc.NewAttendanceService(store.Sessions, store.Employees, store.Periods, finalizer, sweeper, store.Translator, store.Clock),
		periods:    payrollsvc.NewPeriodService(store.Transactor, store.Periods, store.Sessions, sweeper, store.Translator, store.Clock),
		advances:   payrollsvc.NewAdvanceService(store.Advances, store.Periods, store.Employees, store.Translator, store.Clock),
		reports:    NewReportService(store.Sessions, store.Employees, store.Periods, store.Advances, sweeper, store.Translator, store.Clock),
	}
}

func (f *fixture) work(t *testing.T, employeeID, date string, inH, inM, outH, outM int) {
	t.Helper()
	ctx := context.Background()

	f.Clock.Set(f.Local(t, date, inH, inM))
	_, err := f.attendance.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: employeeID})
	require.NoError(t, err)

	f.Clock.Set(f.Local(t, date, outH, outM))
	_, err = f.attendance.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: employeeID})
	require.NoError(t, err)
}

func (f *fixture) advance(t *testing.T, employeeID string, amount int64) {
	t.Helper()

	_, err := f.advances.Create(context.Background(), payroll.CreateAdvanceRequest{
		EmployeeID: employeeID,
		Amount:     decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
}

// seedMonth records a 450 minute day on the 14th, a full day plus two hours of
// overtime on the 15th, and a 100,000 advance.
func (f *fixture) seedMonth(t *testing.T) (employee.Employee, payroll.Period) {
	t.Helper()

	emp := f.SeedEmployee(t, "Budi")
	period := f.SeedPeriod(t, "2026-01-01", "2026-01-31")

	f.work(t, emp.ID, "2026-01-14", 9, 0, 16, 30)
	f.work(t, emp.ID, "2026-01-15", 9, 0, 17, 0)
	f.Clock.Set(f.Local(t, "2026-01-15", 18, 0))
	f.advance(t, emp.ID, 100_000)
	f.work(t, emp.ID, "2026-01-15", 21, 0, 23, 0)

	return emp, period
}

func TestBuildDailySummary_SkipsOpenSessions(t *testing.T) {
	minutes := decimal.NewFromInt(30)
	salary := decimal.NewFromInt(10_500)
	out := time.Date(2026, 1, 14, 15, 30, 0, 0, time.UTC)

	summary := buildDailySummary("emp-1", []attendance.Session{
		{Date: "2026-01-15", Type: attendance.SessionTypeNormal},
		{Date: "2026-01-14", Type: attendance.SessionTypeOvertime, ClockOut: &out, WorkDurationMinutes: &minutes, SalaryEarned: &salary},
	})

	require.Len(t, summary.Days, 1)
	assert.Equal(t, "2026-01-14", summary.Days[0].Date)
	assert.Equal(t, "30", summary.Days[0].WorkMinutesOvertime.String())
	assert.Equal(t, "0", summary.Days[0].WorkMinutesNormal.String())
	assert.Equal(t, "10500", summary.TotalSalary.String())
}

func TestReportService_GetDailySummary(t *testing.T) {
	f := newFixture(t)
	emp, _ := f.seedMonth(t)

	// Act
	summary, err := f.reports.GetDailySummary(context.Background(), emp.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, emp.ID, summary.EmployeeID)
	assert.Equal(t, "1050", summary.TotalWorkMinutes.String())
	assert.Equal(t, "357000", summary.TotalSalary.String())
	require.Len(t, summary.Days, 2)

	day := summary.Days[0]
	assert.Equal(t, "2026-01-15", day.Date)
	assert.Equal(t, "480", day.WorkMinutesNormal.String())
	assert.Equal(t, "120", day.WorkMinutesOvertime.String())
	assert.Equal(t, "168000", day.SalaryNormal.String())
	assert.Equal(t, "42000", day.SalaryOvertime.String())
	assert.Equal(t, "210000", day.TotalSalary.String())

	assert.Equal(t, "2026-01-14", summary.Days[1].Date)
	assert.Equal(t, "147000", summary.Days[1].TotalSalary.String())
}

func TestReportService_GetDailySummary_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.GetDailySummary(context.Background(), "01936f5e-0000-7000-8000-000000000000")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_GetSlip(t *testing.T) {
	f := newFixture(t)
	emp, period := f.seedMonth(t)

	slip, err := f.reports.GetSlip(context.Background(), report.SlipRequest{PeriodID: period.ID, EmployeeID: emp.ID})

	require.NoError(t, err)
	assert.Equal(t, "1050", slip.MinutesWorked.String())
	assert.Equal(t, "350", slip.MinuteRate.String())
	assert.Equal(t, "367500", slip.GrossSalary.String())
	assert.Equal(t, "10500", slip.TotalDeduction.String())
	assert.Equal(t, "100000", slip.TotalAdvances.String())
	assert.Equal(t, "257000", slip.NetSalary.String())
	assert.Len(t, slip.Attendance, 3)
	assert.Equal(t, "Budi", slip.Employee.Name)
	assert.Equal(t, "21000", slip.Employee.HourlyRate.String())
	assert.Equal(t, "Jan 2026", slip.Period.Label)
}

func TestReportService_GetSlip_NetNeverNegative(t *testing.T) {
	f := newFixture(t)
	emp, period := f.seedMonth(t)
	f.advance(t, emp.ID, 5_000_000)

	slip, err := f.reports.GetSlip(context.Background(), report.SlipRequest{PeriodID: period.ID, EmployeeID: emp.ID})

	require.NoError(t, err)
	assert.Equal(t, "5100000", slip.TotalAdvances.String())
	assert.True(t, slip.NetSalary.IsZero())
}

func TestReportService_GetSlip_ExportRequiresLock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp, period := f.seedMonth(t)
	req := report.SlipRequest{PeriodID: period.ID, EmployeeID: emp.ID, RequireLocked: true}

	_, err := f.reports.GetSlip(ctx, req)
	require.ErrorIs(t, err, payroll.ErrPeriodNotLocked)

	_, err = f.periods.Lock(ctx, period.ID)
	require.NoError(t, err)

	slip, err := f.reports.GetSlip(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "257000", slip.NetSalary.String())
	for _, s := range slip.Attendance {
		assert.True(t, s.PayrollLocked)
	}
}

func TestReportService_GetSlip_OutOfRangeSessionsExcluded(t *testing.T) {
	f := newFixture(t)
	emp, _ := f.seedMonth(t)
	feb := f.SeedPeriod(t, "2026-02-01", "2026-02-28")

	slip, err := f.reports.GetSlip(context.Background(), report.SlipRequest{PeriodID: feb.ID, EmployeeID: emp.ID})

	require.NoError(t, err)
	assert.Empty(t, slip.Attendance)
	assert.True(t, slip.GrossSalary.IsZero())
	assert.True(t, slip.NetSalary.IsZero())
}

func TestReportService_GetSlip_NotFound(t *testing.T) {
	f := newFixture(t)
	emp := f.SeedEmployee(t, "Budi")
	period := f.SeedPeriod(t, "2026-01-01", "2026-01-31")

	_, err := f.reports.GetSlip(context.Background(), report.SlipRequest{PeriodID: "01936f5e-0000-7000-8000-000000000000", EmployeeID: emp.ID})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)

	_, err = f.reports.GetSlip(context.Background(), report.SlipRequest{PeriodID: period.ID, EmployeeID: "01936f5e-0000-7000-8000-000000000000"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_GetEmployeeReport(t *testing.T) {
	f := newFixture(t)
	emp, _ := f.seedMonth(t)

	rep, err := f.reports.GetEmployeeReport(context.Background(), emp.ID)

	require.NoError(t, err)
	assert.Equal(t, "357000", rep.TotalSalary.String())
	assert.Equal(t, "1050", rep.TotalWorkMinutes.String())
	assert.Equal(t, "100000", rep.TotalAdvances.String())
	assert.Equal(t, "257000", rep.NetSalary.String())
	assert.Len(t, rep.Attendance, 3)
	assert.Len(t, rep.Advances, 1)
	assert.Len(t, rep.DailySummary.Days, 2)
}

func TestReportService_GetEmployeeReport_NetCanBeNegative(t *testing.T) {
	f := newFixture(t)
	emp, _ := f.seedMonth(t)
	f.advance(t, emp.ID, 400_000)

	rep, err := f.reports.GetEmployeeReport(context.Background(), emp.ID)

	require.NoError(t, err)
	assert.Equal(t, "-143000", rep.NetSalary.String())
}

func TestReportService_GetDashboardStats(t *testing.T) {
	f := newFixture(t)
	f.seedMonth(t)
	f.SeedEmployee(t, "Sari")

	stats, err := f.reports.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", stats.Date)
	assert.Equal(t, "2026-01-01", stats.MonthStart)
	assert.Equal(t, "2026-01-31", stats.MonthEnd)
	assert.Equal(t, int64(2), stats.TotalEmployees)
	assert.Equal(t, int64(2), stats.AttendanceToday)
	assert.Equal(t, "357000", stats.TotalSalaryMonth.String())
	assert.Equal(t, "100000", stats.TotalAdvancesMonth.String())
}
