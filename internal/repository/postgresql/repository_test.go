package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	emp, _ := seed(t, db)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.Name)
	assert.True(t, decimal.RequireFromString("7.5").Equal(got.WorkHoursPerDay))

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSessionRepository_UniquePerTypeAndDate(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewSessionRepository(db)
	emp, period := seed(t, db)

	clockIn := time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, attendance.Session{
		EmployeeID:      emp.ID,
		Type:            attendance.SessionTypeNormal,
		Date:            "2026-01-15",
		ClockIn:         clockIn,
		PayrollPeriodID: &period.ID,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Session{
		EmployeeID: emp.ID,
		Type:       attendance.SessionTypeNormal,
		Date:       "2026-01-15",
		ClockIn:    clockIn.Add(time.Hour),
	})
	assert.ErrorIs(t, err, attendance.ErrSessionAlreadyRecorded)

	_, err = repo.Create(ctx, attendance.Session{
		EmployeeID: emp.ID,
		Type:       attendance.SessionTypeOvertime,
		Date:       "2026-01-15",
		ClockIn:    clockIn.Add(12 * time.Hour),
	})
	assert.NoError(t, err)
}

func TestSessionRepository_FinalizeOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewSessionRepository(db)
	emp, period := seed(t, db)

	clockIn := time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)
	s, err := repo.Create(ctx, attendance.Session{
		EmployeeID: emp.ID,
		Type:       attendance.SessionTypeNormal,
		Date:       "2026-01-15",
		ClockIn:    clockIn,
	})
	require.NoError(t, err)

	f := attendance.Finalization{
		ClockOut:            clockIn.Add(8 * time.Hour),
		EffectiveWorkStart:  clockIn,
		WorkDurationMinutes: decimal.NewFromInt(480),
		SalaryEarned:        decimal.NewFromInt(168000),
		DeductionAmount:     decimal.Zero,
		PayrollPeriodID:     period.ID,
	}
	applied, err := repo.Finalize(ctx, s.ID, f)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.Finalize(ctx, s.ID, f)
	require.NoError(t, err)
	assert.False(t, applied)

	total, err := repo.SumSalary(ctx, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(168000).Equal(total))
}

func TestPeriodRepository_ExclusionConstraint(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := postgresql.NewPeriodRepository(db)
	_, period := seed(t, db)

	_, err := repo.Create(ctx, payroll.Period{
		StartDate: "2026-01-20",
		EndDate:   "2026-02-10",
		Status:    payroll.PeriodStatusOpen,
		CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodOverlap)

	changed, err := repo.MarkLocked(ctx, period.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = repo.Create(ctx, payroll.Period{
		StartDate: "2026-01-20",
		EndDate:   "2026-02-10",
		Status:    payroll.PeriodStatusOpen,
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err, "locked periods do not take part in the overlap constraint")
}

func TestTransactor_RollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	transactor := postgresql.NewTransactor(db)
	repo := postgresql.NewAdvanceRepository(db)
	emp, _ := seed(t, db)

	boom := errors.New("boom")
	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, payroll.Advance{
			EmployeeID: emp.ID,
			Amount:     decimal.NewFromInt(50000),
			Date:       "2026-01-15",
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	total, err := repo.SumAmount(ctx, emp.ID, "", "")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
