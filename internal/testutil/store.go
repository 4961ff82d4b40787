// Package testutil builds throwaway SQLite-backed stores for service and
// handler tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/repository/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type Store struct {
	DB         *database.SQLiteDB
	Transactor database.Transactor
	Sessions   attendance.SessionRepository
	Periods    payroll.PeriodRepository
	Advances   payroll.AdvanceRepository
	Employees  employee.EmployeeRepository
	Translator *localtime.Translator
	Clock      *localtime.FixedClock
}

// NewStore opens an in-memory database. The clock starts at 2026-01-15 09:00 local.
func NewStore(t testing.TB) *Store {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tr := localtime.NewTranslator(localtime.DefaultOffsetHours)
	s := &Store{
		DB:         db,
		Transactor: sqlite.NewTransactor(db),
		Sessions:   sqlite.NewSessionRepository(db),
		Periods:    sqlite.NewPeriodRepository(db),
		Advances:   sqlite.NewAdvanceRepository(db),
		Employees:  sqlite.NewEmployeeRepository(db),
		Translator: tr,
		Clock:      &localtime.FixedClock{},
	}
	s.Clock.Set(s.Local(t, "2026-01-15", 9, 0))
	return s
}

// Local returns the absolute instant of hh:mm local time on date.
func (s *Store) Local(t testing.TB, date string, hour, minute int) time.Time {
	t.Helper()

	at, err := s.Translator.At(date, hour, minute)
	require.NoError(t, err)
	return s.Translator.ToAbsolute(at)
}

// SeedEmployee creates an active employee earning 3,696,000 a month over an
// 8 hour day, which prices a minute at exactly 350.
func (s *Store) SeedEmployee(t testing.TB, name string) employee.Employee {
	t.Helper()

	emp, err := s.Employees.Create(context.Background(), employee.Employee{
		Name:            name,
		Position:        "Staff",
		MonthlySalary:   decimal.NewFromInt(3_696_000),
		WorkHoursPerDay: decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	return emp
}

// SeedPeriod creates an open period covering [start, end].
func (s *Store) SeedPeriod(t testing.TB, start, end string) payroll.Period {
	t.Helper()

	p, err := s.Periods.Create(context.Background(), payroll.Period{
		StartDate: start,
		EndDate:   end,
		Status:    payroll.PeriodStatusOpen,
		CreatedAt: s.Clock.Now(),
	})
	require.NoError(t, err)
	return p
}
