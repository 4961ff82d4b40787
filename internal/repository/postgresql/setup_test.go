package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestDatabase connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, truncateAllTables(context.Background(), db))
	return db
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"advances",
		"attendance_sessions",
		"payroll_periods",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func seed(t *testing.T, db *database.DB) (employee.Employee, payroll.Period) {
	t.Helper()
	ctx := context.Background()

	emp, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		Name:            "Budi",
		MonthlySalary:   decimal.NewFromInt(3_696_000),
		WorkHoursPerDay: decimal.RequireFromString("7.5"),
	})
	require.NoError(t, err)

	period, err := postgresql.NewPeriodRepository(db).Create(ctx, payroll.Period{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
		Status:    payroll.PeriodStatusOpen,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return emp, period
}
