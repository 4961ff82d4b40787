package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) payroll.AdvanceRepository {
	return &advanceRepository{db: db}
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

	date, err := pgDate(advance.Date)
	if err != nil {
		return payroll.Advance{}, err
	}

	query := `
		INSERT INTO advances (id, employee_id, amount, note, date, payroll_period_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		advance.ID,
		advance.EmployeeID,
		advance.Amount,
		advance.Note,
		date,
		advance.PayrollPeriodID,
	).Scan(&advance.CreatedAt)
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

	query := `
		SELECT id, employee_id, amount, note, date, payroll_period_id, created_at
		FROM advances
		WHERE ($1 = '' OR employee_id::text = $1)
		ORDER BY date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	advances := make([]payroll.Advance, 0)
	for rows.Next() {
		var (
			a    payroll.Advance
			date time.Time
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.Note, &date, &a.PayrollPeriodID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		a.Date = formatDate(date)
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
		args = append(args, employeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	where, args, err := dateRange(where, args, "date", startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}

	query := `SELECT COALESCE(SUM(amount), 0) FROM advances` + whereClause(where)

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum advances: %w", err)
	}
	return total, nil
}
