package payroll

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
	attendancesvc "github.com/cmlabs-hris/payroll-attendance-go/internal/service/attendance"
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
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := testutil.NewStore(t)
	finalizer := attendancesvc.NewFinalizer(store.Transactor, store.Sessions, store.Employees, store.Periods, store.Translator)
	sweeper := attendancesvc.NewSweeper(store.Sessions, finalizer, store.Translator)

	return &fixture{
		Store:      store,
		attendance: attendancesvc.NewAttendanceService(store.Sessions, store.Employees, store.Periods, finalizer, sweeper, store.Translator, store.Clock),
		periods:    NewPeriodService(store.Transactor, store.Periods, store.Sessions, sweeper, store.Translator, store.Clock),
		advances:   NewAdvanceService(store.Advances, store.Periods, store.Employees, store.Translator, store.Clock),
	}
}

// ===== PERIODS =====

func TestPeriodService_Create_DefaultsToCurrentMonth(t *testing.T) {
	f := newFixture(t)
	f.Clock.Set(f.Local(t, "2026-02-14", 10, 0))

	// Act
	resp, err := f.periods.Create(context.Background(), payroll.CreatePeriodRequest{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", resp.StartDate)
	assert.Equal(t, "2026-02-28", resp.EndDate)
	assert.Equal(t, payroll.PeriodStatusOpen, resp.Status)
	assert.Equal(t, "Feb 2026", resp.Label)
	assert.NotEmpty(t, resp.ID)
}

func TestPeriodService_Create_ExplicitRange(t *testing.T) {
	f := newFixture(t)

	resp, err := f.periods.Create(context.Background(), payroll.CreatePeriodRequest{
		StartDate: "2026-01-10",
		EndDate:   "2026-02-09",
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-01-10", resp.StartDate)
	assert.Equal(t, "2026-02-09", resp.EndDate)
}

func TestPeriodService_Create_PartialRangeDefaultsToCurrentMonth(t *testing.T) {
	tests := []struct {
		name string
		req  payroll.CreatePeriodRequest
	}{
		{name: "only start", req: payroll.CreatePeriodRequest{StartDate: "2026-05-10"}},
		{name: "only end", req: payroll.CreatePeriodRequest{EndDate: "2026-05-10"}},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.Clock.Set(f.Local(t, "2026-02-14", 10, 0))

			resp, err := f.periods.Create(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, "2026-02-01", resp.StartDate)
			assert.Equal(t, "2026-02-28", resp.EndDate)
		})
	}
}

func TestPeriodService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  payroll.CreatePeriodRequest
	}{
		{name: "start after end", req: payroll.CreatePeriodRequest{StartDate: "2026-02-01", EndDate: "2026-01-31"}},
		{name: "bad format", req: payroll.CreatePeriodRequest{StartDate: "01/02/2026", EndDate: "2026-02-28"}},
	}

	f := newFixture(t)
	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.periods.Create(context.Background(), tt.req)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestPeriodService_Create_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.periods.Create(ctx, payroll.CreatePeriodRequest{StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)

	_, err = f.periods.Create(ctx, payroll.CreatePeriodRequest{StartDate: "2026-01-31", EndDate: "2026-02-27"})
	assert.ErrorIs(t, err, payroll.ErrPeriodOverlap)

	// adjacent ranges do not overlap
	_, err = f.periods.Create(ctx, payroll.CreatePeriodRequest{StartDate: "2026-02-01", EndDate: "2026-02-28"})
	assert.NoError(t, err)
}

func TestPeriodService_Create_LockedPeriodDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first, err := f.periods.Create(ctx, payroll.CreatePeriodRequest{StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)
	_, err = f.periods.Lock(ctx, first.ID)
	require.NoError(t, err)

	_, err = f.periods.Create(ctx, payroll.CreatePeriodRequest{StartDate: "2026-01-15", EndDate: "2026-02-14"})
	assert.NoError(t, err)
}

func TestPeriodService_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.periods.GetByID(context.Background(), "01936f5e-0000-7000-8000-000000000000")

	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

func TestPeriodService_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.SeedPeriod(t, "2026-01-01", "2026-01-31")
	f.SeedPeriod(t, "2026-03-01", "2026-03-31")
	f.SeedPeriod(t, "2026-02-01", "2026-02-28")

	periods, err := f.periods.List(ctx)

	require.NoError(t, err)
	require.Len(t, periods, 3)
	assert.Equal(t, "2026-03-01", periods[0].StartDate)
	assert.Equal(t, "2026-01-01", periods[2].StartDate)
}

func TestPeriodService_Lock_SweepsThenFreezes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.SeedEmployee(t, "Budi")
	absent := f.SeedEmployee(t, "Sari")
	period := f.SeedPeriod(t, "2026-01-01", "2026-01-31")

	// Sari never clocked out on the 14th and nothing has swept her since
	f.Clock.Set(f.Local(t, "2026-01-14", 9, 0))
	stale, err := f.attendance.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: absent.ID})
	require.NoError(t, err)
	f.Clock.Set(f.Local(t, "2026-01-15", 9, 0))
	_, err = f.attendance.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	// Act
	f.Clock.Set(f.Local(t, "2026-01-15", 12, 0))
	resp, err := f.periods.Lock(ctx, period.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodStatusLocked, resp.Status)
	require.NotNil(t, resp.LockedAt)

	swept, err := f.Sessions.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.NotNil(t, swept.ClockOut, "expired session is paid before the lock")
	assert.True(t, swept.Locked)
	assert.Equal(t, period.ID, *swept.PayrollPeriodID)

	// today's session is frozen open
	open, err := f.Sessions.GetOpenSession(ctx, emp.ID, nil)
	require.NoError(t, err)
	assert.True(t, open.Locked)

	f.Clock.Set(f.Local(t, "2026-01-15", 17, 0))
	_, err = f.attendance.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrSessionLocked)

	_, err = f.periods.Lock(ctx, period.ID)
	assert.ErrorIs(t, err, payroll.ErrPeriodAlreadyLocked)
}

func TestPeriodService_Lock_BlocksClockIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.SeedEmployee(t, "Budi")
	period := f.SeedPeriod(t, "2026-01-01", "2026-01-31")

	_, err := f.periods.Lock(ctx, period.ID)
	require.NoError(t, err)

	_, err = f.attendance.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, payroll.ErrNoOpenPeriod)
}

func TestPeriodService_ListExportable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	months := [][2]string{
		{"2025-10-01", "2025-10-31"},
		{"2025-11-01", "2025-11-30"},
		{"2025-12-01", "2025-12-31"},
		{"2026-01-01", "2026-01-31"},
	}
	for _, m := range months {
		p := f.SeedPeriod(t, m[0], m[1])
		_, err := f.periods.Lock(ctx, p.ID)
		require.NoError(t, err)
	}
	f.SeedPeriod(t, "2026-02-01", "2026-02-28")

	exportable, err := f.periods.ListExportable(ctx)

	require.NoError(t, err)
	require.Len(t, exportable, 3)
	assert.Equal(t, "Jan 2026", exportable[0].Label)
	assert.Equal(t, "2026-01-31", exportable[0].End)
	assert.Equal(t, "Nov 2025", exportable[2].Label)
}

func TestPeriodService_Relock_RepairsFlags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.SeedEmployee(t, "Budi")
	period := f.SeedPeriod(t, "2026-01-01", "2026-01-31")
	f.Clock.Set(f.Local(t, "2026-01-15", 9, 0))
	in, err := f.attendance.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	// period flipped without touching attendance
	_, err = f.Periods.MarkLocked(ctx, period.ID, f.Clock.Now())
	require.NoError(t, err)

	touched, err := f.periods.Relock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), touched)

	stored, err := f.Sessions.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.True(t, stored.Locked)
}

// ===== ADVANCES =====

func TestAdvanceService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.SeedEmployee(t, "Budi")
	period := f.SeedPeriod(t, "2026-01-01", "2026-01-31")
	note := "school fees"

	resp, err := f.advances.Create(ctx, payroll.CreateAdvanceRequest{
		EmployeeID: emp.ID,
		Amount:     decimal.NewFromInt(250_000),
		Note:       &note,
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", resp.Date)
	assert.Equal(t, "250000", resp.Amount.String())
	require.NotNil(t, resp.PayrollPeriodID)
	assert.Equal(t, period.ID, *resp.PayrollPeriodID)

	list, err := f.advances.List(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "school fees", *list[0].Note)
}

func TestAdvanceService_Create_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp := f.SeedEmployee(t, "Budi")

	_, err := f.advances.Create(ctx, payroll.CreateAdvanceRequest{EmployeeID: emp.ID, Amount: decimal.Zero})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.advances.Create(ctx, payroll.CreateAdvanceRequest{EmployeeID: emp.ID, Amount: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, payroll.ErrNoOpenPeriod)

	f.SeedPeriod(t, "2026-01-01", "2026-01-31")
	_, err = f.advances.Create(ctx, payroll.CreateAdvanceRequest{
		EmployeeID: "01936f5e-0000-7000-8000-000000000000",
		Amount:     decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAdvanceService_List_AllEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.SeedPeriod(t, "2026-01-01", "2026-01-31")
	for _, name := range []string{"Budi", "Sari"} {
		emp := f.SeedEmployee(t, name)
		_, err := f.advances.Create(ctx, payroll.CreateAdvanceRequest{EmployeeID: emp.ID, Amount: decimal.NewFromInt(1000)})
		require.NoError(t, err)
	}

	all, err := f.advances.List(ctx, "")

	require.NoError(t, err)
	assert.Len(t, all, 2)
}
