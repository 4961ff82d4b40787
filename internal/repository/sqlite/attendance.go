package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const sessionColumns = `
	id, employee_id, session_type, date, clock_in, clock_out, effective_work_start,
	work_duration_minutes, salary_earned, deduction_amount, is_late, late_minutes,
	payroll_period_id, payroll_locked, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type sessionRepository struct {
	db  *database.SQLiteDB
	now func() time.Time
}

func NewSessionRepository(db *database.SQLiteDB) attendance.SessionRepository {
	return &sessionRepository{db: db, now: time.Now}
}

func scanSession(row rowScanner) (attendance.Session, error) {
	var (
		s                                        attendance.Session
		sessionType, clockIn, createdAt, updated string
		clockOut, effectiveStart                 sql.NullString
		duration, salary, deduction, periodID    sql.NullString
	)
	err := row.Scan(
		&s.ID, &s.EmployeeID, &sessionType, &s.Date, &clockIn, &clockOut, &effectiveStart,
		&duration, &salary, &deduction, &s.IsLate, &s.LateMinutes,
		&periodID, &s.Locked, &createdAt, &updated,
	)
	if err != nil {
		return attendance.Session{}, err
	}

	s.Type = attendance.SessionType(sessionType)
	s.PayrollPeriodID = stringPtr(periodID)
	if s.ClockIn, err = parseTime(clockIn); err != nil {
		return attendance.Session{}, err
	}
	if s.ClockOut, err = parseNullTime(clockOut); err != nil {
		return attendance.Session{}, err
	}
	if s.EffectiveWorkStart, err = parseNullTime(effectiveStart); err != nil {
		return attendance.Session{}, err
	}
	if s.WorkDurationMinutes, err = parseNullDecimal(duration); err != nil {
		return attendance.Session{}, err
	}
	if s.SalaryEarned, err = parseNullDecimal(salary); err != nil {
		return attendance.Session{}, err
	}
	if s.DeductionAmount, err = parseNullDecimal(deduction); err != nil {
		return attendance.Session{}, err
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return attendance.Session{}, err
	}
	if s.UpdatedAt, err = parseTime(updated); err != nil {
		return attendance.Session{}, err
	}
	return s, nil
}

func (r *sessionRepository) querySessions(ctx context.Context, query string, args ...interface{}) ([]attendance.Session, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, query, args...)
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
	now := r.now().UTC().Truncate(time.Microsecond)
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `
		INSERT INTO attendance_sessions (
			id, employee_id, session_type, date, clock_in, effective_work_start,
			is_late, late_minutes, payroll_period_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		session.ID,
		session.EmployeeID,
		string(session.Type),
		session.Date,
		formatTime(session.ClockIn),
		nullTime(session.EffectiveWorkStart),
		session.IsLate,
		session.LateMinutes,
		nullString(session.PayrollPeriodID),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
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

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = ?`

	s, err := scanSession(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_sessions
			WHERE employee_id = ? AND date = ? AND session_type = ?
		)
	`

	var exists bool
	if err := q.QueryRowContext(ctx, query, employeeID, date, string(sessionType)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance session: %w", err)
	}
	return exists, nil
}

// GetOpenSession implements attendance.SessionRepository.
func (r *sessionRepository) GetOpenSession(ctx context.Context, employeeID string, sessionType *attendance.SessionType) (attendance.Session, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE employee_id = ? AND clock_out IS NULL`
	args := []interface{}{employeeID}
	if sessionType != nil {
		query += ` AND session_type = ?`
		args = append(args, string(*sessionType))
	}
	query += ` ORDER BY clock_in DESC LIMIT 1`

	s, err := scanSession(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE clock_out IS NULL AND payroll_locked = 0`
	var args []interface{}
	if employeeID != "" {
		query += ` AND employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY clock_in ASC`

	sessions, err := r.querySessions(ctx, query, args...)
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
		where = append(where, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	where, args = dateBounds(where, args, "date", filter.StartDate, filter.EndDate)

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

	where := []string{"employee_id = ?", "clock_out IS NOT NULL"}
	args := []interface{}{employeeID}
	where, args = dateBounds(where, args, "date", startDate, endDate)

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
		SET clock_out = ?,
			effective_work_start = ?,
			work_duration_minutes = ?,
			salary_earned = ?,
			deduction_amount = ?,
			payroll_period_id = ?,
			payroll_locked = 0,
			updated_at = ?
		WHERE id = ? AND clock_out IS NULL AND payroll_locked = 0
	`

	res, err := q.ExecContext(ctx, query,
		formatTime(f.ClockOut),
		formatTime(f.EffectiveWorkStart),
		f.WorkDurationMinutes.String(),
		f.SalaryEarned.String(),
		f.DeductionAmount.String(),
		f.PayrollPeriodID,
		formatTime(r.now()),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to finalize attendance session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to finalize attendance session: %w", err)
	}
	return affected == 1, nil
}

// LockRange implements attendance.SessionRepository.
func (r *sessionRepository) LockRange(ctx context.Context, periodID string, startDate string, endDate string) (int64, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_sessions
		SET payroll_locked = 1, payroll_period_id = ?, updated_at = ?
		WHERE date BETWEEN ? AND ?
	`

	res, err := q.ExecContext(ctx, query, periodID, formatTime(r.now()), startDate, endDate)
	if err != nil {
		return 0, fmt.Errorf("failed to lock attendance sessions: %w", err)
	}
	return res.RowsAffected()
}

// CountByDate implements attendance.SessionRepository.
func (r *sessionRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendance_sessions WHERE date = ?`, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance sessions: %w", err)
	}
	return count, nil
}

// SumSalary implements attendance.SessionRepository. Amounts are added in Go
// to avoid SQLite's floating point SUM.
func (r *sessionRepository) SumSalary(ctx context.Context, startDate string, endDate string) (decimal.Decimal, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	where, args := dateBounds([]string{"salary_earned IS NOT NULL"}, nil, "date", startDate, endDate)
	query := `SELECT salary_earned FROM attendance_sessions` + whereClause(where)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum salary: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("failed to sum salary: %w", err)
		}
		amount, err := parseDecimal(raw)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}
