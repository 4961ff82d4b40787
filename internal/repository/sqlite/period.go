package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

const periodColumns = `id, start_date, end_date, status, created_at, locked_at`

type periodRepository struct {
	db *database.SQLiteDB
}

func NewPeriodRepository(db *database.SQLiteDB) payroll.PeriodRepository {
	return &periodRepository{db: db}
}

func scanPeriod(row rowScanner) (payroll.Period, error) {
	var (
		p                 payroll.Period
		status, createdAt string
		lockedAt          sql.NullString
	)
	if err := row.Scan(&p.ID, &p.StartDate, &p.EndDate, &status, &createdAt, &lockedAt); err != nil {
		return payroll.Period{}, err
	}
	p.Status = payroll.PeriodStatus(status)

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return payroll.Period{}, err
	}
	if p.LockedAt, err = parseNullTime(lockedAt); err != nil {
		return payroll.Period{}, err
	}
	return p, nil
}

func (r *periodRepository) queryPeriods(ctx context.Context, query string, args ...interface{}) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]payroll.Period, 0)
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// Create implements payroll.PeriodRepository.
func (r *periodRepository) Create(ctx context.Context, period payroll.Period) (payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if period.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return payroll.Period{}, fmt.Errorf("failed to generate period id: %w", err)
		}
		period.ID = id.String()
	}
	period.CreatedAt = period.CreatedAt.UTC().Truncate(time.Microsecond)

	query := `
		INSERT INTO payroll_periods (id, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		period.ID, period.StartDate, period.EndDate, string(period.Status), formatTime(period.CreatedAt),
	)
	if err != nil {
		return payroll.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return period, nil
}

// GetByID implements payroll.PeriodRepository.
func (r *periodRepository) GetByID(ctx context.Context, id string) (payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = ?`

	p, err := scanPeriod(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}
	return p, nil
}

// List implements payroll.PeriodRepository.
func (r *periodRepository) List(ctx context.Context) ([]payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	query := `SELECT ` + periodColumns + ` FROM payroll_periods ORDER BY start_date DESC`

	periods, err := r.queryPeriods(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	return periods, nil
}

// FindOpenForDate implements payroll.PeriodRepository. SQLite serializes
// writers, so no row lock is taken.
func (r *periodRepository) FindOpenForDate(ctx context.Context, date string) (payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE status = 'open' AND start_date <= ? AND end_date >= ?
		ORDER BY start_date DESC
		LIMIT 1
	`

	p, err := scanPeriod(q.QueryRowContext(ctx, query, date, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payroll.Period{}, payroll.ErrNoOpenPeriod
		}
		return payroll.Period{}, fmt.Errorf("failed to find open payroll period: %w", err)
	}
	return p, nil
}

// HasOpenOverlap implements payroll.PeriodRepository.
func (r *periodRepository) HasOpenOverlap(ctx context.Context, startDate string, endDate string) (bool, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_periods
			WHERE status = 'open' AND start_date <= ? AND end_date >= ?
		)
	`

	var exists bool
	if err := q.QueryRowContext(ctx, query, endDate, startDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll period overlap: %w", err)
	}
	return exists, nil
}

// MarkLocked implements payroll.PeriodRepository.
func (r *periodRepository) MarkLocked(ctx context.Context, id string, lockedAt time.Time) (bool, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = 'locked', locked_at = ?
		WHERE id = ? AND status = 'open'
	`

	res, err := q.ExecContext(ctx, query, formatTime(lockedAt), id)
	if err != nil {
		return false, fmt.Errorf("failed to lock payroll period: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to lock payroll period: %w", err)
	}
	return affected == 1, nil
}

// ListLocked implements payroll.PeriodRepository.
func (r *periodRepository) ListLocked(ctx context.Context, limit int) ([]payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE status = 'locked' ORDER BY end_date DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	periods, err := r.queryPeriods(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked payroll periods: %w", err)
	}
	return periods, nil
}
