package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (attendance.SessionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSessionRepository(&database.SQLiteDB{DB: db}), mock
}

func testFinalization() attendance.Finalization {
	return attendance.Finalization{
		ClockOut:            time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
		EffectiveWorkStart:  time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC),
		WorkDurationMinutes: decimal.NewFromInt(450),
		SalaryEarned:        decimal.NewFromInt(147_000),
		DeductionAmount:     decimal.NewFromInt(10_500),
		PayrollPeriodID:     "period-1",
	}
}

func TestSessionRepository_Finalize_GuardedUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE attendance_sessions .* WHERE id = \? AND clock_out IS NULL AND payroll_locked = 0`).
		WithArgs(
			"2026-01-15T09:30:00.000000Z",
			"2026-01-15T02:00:00.000000Z",
			"450",
			"147000",
			"10500",
			"period-1",
			sqlmock.AnyArg(),
			"session-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.Finalize(context.Background(), "session-1", testFinalization())

	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Finalize_NoRowChanged(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE attendance_sessions`).WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.Finalize(context.Background(), "session-1", testFinalization())

	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Finalize_DriverError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("disk I/O error")

	mock.ExpectExec(`UPDATE attendance_sessions`).WillReturnError(boom)

	_, err := repo.Finalize(context.Background(), "session-1", testFinalization())

	assert.ErrorIs(t, err, boom)
}

func TestSessionRepository_LockRange(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE attendance_sessions\s+SET payroll_locked = 1`).
		WithArgs("period-1", sqlmock.AnyArg(), "2026-01-01", "2026-01-31").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.LockRange(context.Background(), "period-1", "2026-01-01", "2026-01-31")

	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := &database.SQLiteDB{DB: db}
	repo := NewSessionRepository(store)
	tx := NewTransactor(store)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE attendance_sessions`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectRollback()

	err = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		if _, err := repo.LockRange(ctx, "period-1", "2026-01-01", "2026-01-31"); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_NestedCallsJoin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tx := NewTransactor(&database.SQLiteDB{DB: db})

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
