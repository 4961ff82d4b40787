package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type advanceRepository struct {
	db  *database.SQLiteDB
	now func() time.Time
}

func NewAdvanceRepository(db *database.SQLiteDB) payroll.AdvanceRepository {
	return &advanceRepository{db: db, now: time.Now}
}

// Create implements payroll.AdvanceRepository.
func (r *advanceRepository) Create(ctx context.Context, advance payroll.Advance) (payroll.Advance, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if advance.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return payroll.Advance{}, fmt.Errorf("failed to generate advance id: %w", err)
		}
		advance.ID = id.String()
	}
	advance.CreatedAt = r.now().UTC().Truncate(time.Microsecond)

	query := `
		INSERT INTO advances (id, employee_id, amount, note, date, payroll_period_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		advance.ID,
		advance.EmployeeID,
		advance.Amount.String(),
		nullString(advance.Note),
		advance.Date,
		nullString(advance.PayrollPeriodID),
		formatTime(advance.CreatedAt),
	)
	if err != nil {
		return payroll.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return advance, nil
}

// List implements payroll.AdvanceRepository.
func (r *advanceRepository) List(ctx context.Context, employeeID string) ([]payroll.Advance, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT id, employee_id, amount, note, date, payroll_period_id, created_at FROM advances`
	var args []interface{}
	if employeeID != "" {
		query += ` WHERE employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	advances := make([]payroll.Advance, 0)
	for rows.Next() {
		var (
			a                 payroll.Advance
			amount, createdAt string
			note, periodID    sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &amount, &note, &a.Date, &periodID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		if a.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		a.Note = stringPtr(note)
		a.PayrollPeriodID = stringPtr(periodID)
		advances = append(advances, a)
	}

	return advances, rows.Err()
}

// SumAmount implements payroll.AdvanceRepository.
func (r *advanceRepository) SumAmount(ctx context.Context, employeeID string, startDate string, endDate string) (decimal.Decimal, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var (
		where []string
		args  []interface{}
	)
	if employeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, employeeID)
	}
	where, args = dateBounds(where, args, "date", startDate, endDate)

	rows, err := q.QueryContext(ctx, `SELECT amount FROM advances`+whereClause(where), args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum advances: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("failed to sum advances: %w", err)
		}
		amount, err := parseDecimal(raw)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}
