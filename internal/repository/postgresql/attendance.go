package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const sessionColumns = `
	id, employee_id, session_type, date, clock_in, clock_out, effective_work_start,
	work_duration_minutes, salary_earned, deduction_amount, is_late, late_minutes,
	payroll_period_id, payroll_locked, created_at, updated_at`

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) attendance.SessionRepository {
	return &sessionRepository{db: db}
}

func scanSession(row pgx.Row) (attendance.Session, error) {
	var (
		s                           attendance.Session
		sessionType                 string
		date                        time.Time
		duration, salary, deduction decimal.NullDecimal
	)
	err := row.Scan(
		&s.ID, &s.EmployeeID, &sessionType, &date, &s.ClockIn, &s.ClockOut, &s.EffectiveWorkStart,
		&duration, &salary, &deduction, &s.IsLate, &s.LateMinutes,
		&s.PayrollPeriodID, &s.Locked, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return attendance.Session{}, err
	}
	s.Type = attendance.SessionType(sessionType)
	s.Date = formatDate(date)
	s.WorkDurationMinutes = decimalPtr(duration)
	s.SalaryEarned = decimalPtr(salary)
	s.DeductionAmount = decimalPtr(deduction)
	return s, nil
}

func (r *sessionRepository) querySessions(ctx context.Context, query string, args ...interface{}) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]attendance.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Create implements attendance.SessionRepository.
func (r *sessionRepository) Create(ctx context.Context, session attendance.Session) (attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if session.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Session{}, fmt.Errorf("failed to generate session id: %w", err)
		}
		session.ID = id.String()
	}

	date, err := pgDate(session.Date)
	if err != nil {
		return attendance.Session{}, err
	}

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, session_type, date, clock_in, effective_work_start,
			is_late, late_minutes, payroll_period_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		session.ID,
		session.EmployeeID,
		string(session.Type),
		date,
		session.ClockIn,
		session.EffectiveWorkStart,
		session.IsLate,
		session.LateMinutes,
		session.PayrollPeriodID,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if hasPgCode(err, uniqueViolation) {
			return attendance.Session{}, attendance.ErrSessionAlreadyRecorded
		}
		return attendance.Session{}, fmt.Errorf("failed to create attendance session: %w", err)
	}

	return session, nil
}

// GetByID implements attendance.SessionRepository.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrSessionNotFound
		}
		return attendance.Session{}, fmt.Errorf("failed to get attendance session: %w", err)
	}
	return s, nil
}

// ExistsForDate implements attendance.SessionRepository.
func (r *sessionRepository) ExistsForDate(ctx context.Context, employeeID string, date string, sessionType attendance.SessionType) (bool, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	d, err := pgDate(date)
	if err != nil {
		return false, err
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_sessions
			WHERE employee_id = $1 AND date = $2 AND session_type = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, d, string(sessionType)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance session: %w", err)
	}
	return exists, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, employeeID string, sessionType *attendance.SessionType) (attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND clock_out IS NULL
		  AND ($2::text IS NULL OR session_type = $2)
		ORDER BY clock_in DESC
		LIMIT 1
	`

	var typeArg *string
	if sessionType != nil {
		t := string(*sessionType)
		typeArg = &t
	}

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, typeArg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNoOpenSession
		}
		return attendance.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return s, nil
}

// ListOpen implements attendance.SessionRepository.
func (r *sessionRepository) ListOpen(ctx context.Context, employeeID string) ([]attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE clock_out IS NULL
		  AND payroll_locked = FALSE
		  AND ($1 = '' OR employee_id::text = $1)
		ORDER BY clock_in ASC
	`

	sessions, err := r.querySessions(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}
	return sessions, nil
}

// List implements attendance.SessionRepository.
func (r *sessionRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	var (
		where []string
		args  []interface{}
	)

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}

	where, args, err := dateRange(where, args, "date", filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions` + whereClause(where) +
		` ORDER BY date DESC, clock_in DESC`

	sessions, err := r.querySessions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance sessions: %w", err)
	}
	return sessions, nil
}

// ListFinalized implements attendance.SessionRepository.
func (r *sessionRepository) ListFinalized(ctx context.Context, employeeID string, startDate string, endDate string) ([]attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	where := []string{"employee_id = $1", "clock_out IS NOT NULL"}
	args := []interface{}{employeeID}

	where, args, err := dateRange(where, args, "date", startDate, endDate)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions` + whereClause(where) +
		` ORDER BY date ASC, clock_in ASC`

	sessions, err := r.querySessions(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list finalized sessions: %w", err)
	}
	return sessions, nil
}

// Finalize implements attendance.SessionRepository.
func (r *sessionRepository) Finalize(ctx context.Context, id string, f attendance.Finalization) (bool, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET clock_out = $2,
			effective_work_start = $3,
			work_duration_minutes = $4,
			salary_earned = $5,
			deduction_amount = $6,
			payroll_period_id = $7,
			payroll_locked = FALSE,
			updated_at = NOW()
		WHERE id = $1
		  AND clock_out IS NULL
		  AND payroll_locked = FALSE
	`

	tag, err := q.Exec(ctx, query,
		id,
		f.ClockOut,
		f.EffectiveWorkStart,
		f.WorkDurationMinutes,
		f.SalaryEarned,
		f.DeductionAmount,
		f.PayrollPeriodID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to finalize attendance session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// LockRange implements attendance.SessionRepository.
func (r *sessionRepository) LockRange(ctx context.Context, periodID string, startDate string, endDate string) (int64, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	start, err := pgDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := pgDate(endDate)
	if err != nil {
		return 0, err
	}

	query := `
		UPDATE attendance_sessions
		SET payroll_locked = TRUE, payroll_period_id = $1, updated_at = NOW()
		WHERE date BETWEEN $2 AND $3
	`

	tag, err := q.Exec(ctx, query, periodID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to lock attendance sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountByDate implements attendance.SessionRepository.
func (r *sessionRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	d, err := pgDate(date)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_sessions WHERE date = $1`, d).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance sessions: %w", err)
	}
	return count, nil
}

// SumSalary implements attendance.SessionRepository.
func (r *sessionRepository) SumSalary(ctx context.Context, startDate string, endDate string) (decimal.Decimal, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	where, args, err := dateRange(nil, nil, "date", startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}

	query := `SELECT COALESCE(SUM(salary_earned), 0) FROM attendance_sessions` + whereClause(where)

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum salary: %w", err)
	}
	return total, nil
}
