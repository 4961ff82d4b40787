package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const periodColumns = `id, start_date, end_date, status, created_at, locked_at`

type periodRepository struct {
	db *database.DB
}

func NewPeriodRepository(db *database.DB) payroll.PeriodRepository {
	return &periodRepository{db: db}
}

func scanPeriod(row pgx.Row) (payroll.Period, error) {
	var (
		p          payroll.Period
		start, end time.Time
		status     string
	)
	if err := row.Scan(&p.ID, &start, &end, &status, &p.CreatedAt, &p.LockedAt); err != nil {
		return payroll.Period{}, err
	}
	p.StartDate = formatDate(start)
	p.EndDate = formatDate(end)
	p.Status = payroll.PeriodStatus(status)
	return p, nil
}

func (r *periodRepository) queryPeriods(ctx context.Context, query string, args ...interface{}) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
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

	start, err := pgDate(period.StartDate)
	if err != nil {
		return payroll.Period{}, err
	}
	end, err := pgDate(period.EndDate)
	if err != nil {
		return payroll.Period{}, err
	}

	query := `
		INSERT INTO payroll_periods (id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = q.Exec(ctx, query, period.ID, start, end, string(period.Status), period.CreatedAt)
	if err != nil {
		if hasPgCode(err, exclusionViolation) {
			return payroll.Period{}, payroll.ErrPeriodOverlap
		}
		return payroll.Period{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return period, nil
}

// GetByID implements payroll.PeriodRepository.
func (r *periodRepository) GetByID(ctx context.Context, id string) (payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1`

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

// FindOpenForDate implements payroll.PeriodRepository.
func (r *periodRepository) FindOpenForDate(ctx context.Context, date string) (payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	d, err := pgDate(date)
	if err != nil {
		return payroll.Period{}, err
	}

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE status = 'open' AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date DESC
		LIMIT 1
		FOR SHARE
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, d))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	start, err := pgDate(startDate)
	if err != nil {
		return false, err
	}
	end, err := pgDate(endDate)
	if err != nil {
		return false, err
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payroll_periods
			WHERE status = 'open' AND start_date <= $2 AND end_date >= $1
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, start, end).Scan(&exists); err != nil {
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
		SET status = 'locked', locked_at = $2
		WHERE id = $1 AND status = 'open'
	`

	tag, err := q.Exec(ctx, query, id, lockedAt)
	if err != nil {
		return false, fmt.Errorf("failed to lock payroll period: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListLocked implements payroll.PeriodRepository.
func (r *periodRepository) ListLocked(ctx context.Context, limit int) ([]payroll.Period, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE status = 'locked' ORDER BY end_date DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	periods, err := r.queryPeriods(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked payroll periods: %w", err)
	}
	return periods, nil
}
