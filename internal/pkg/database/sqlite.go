package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB is the embedded single-node store. It holds one connection so that
// in-memory databases stay shared and writes are serialized.
type SQLiteDB struct {
	*sql.DB
	// CallTimeout bounds each repository call. Zero disables the bound.
	CallTimeout time.Duration
}

// NewSQLiteDB opens (or creates) a SQLite database at path and applies the schema.
// Use ":memory:" for an ephemeral database.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	if path != ":memory:" {
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLiteDB{DB: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

// Bound returns ctx limited by CallTimeout.
func (s *SQLiteDB) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return bound(ctx, s.CallTimeout)
}

// migrate creates the schema. Dates are YYYY-MM-DD text, instants RFC 3339 text
// in UTC and money decimal text.
func (s *SQLiteDB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		position           TEXT NOT NULL DEFAULT '',
		monthly_salary     TEXT NOT NULL DEFAULT '0',
		work_hours_per_day TEXT NOT NULL DEFAULT '8',
		status             TEXT NOT NULL DEFAULT 'active',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS payroll_periods (
		id         TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'locked')),
		created_at TEXT NOT NULL,
		locked_at  TEXT,
		CHECK (start_date <= end_date)
	);

	CREATE TABLE IF NOT EXISTS attendance_sessions (
		id                    TEXT PRIMARY KEY,
		employee_id           TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		session_type          TEXT NOT NULL CHECK (session_type IN ('normal', 'overtime')),
		date                  TEXT NOT NULL,
		clock_in              TEXT NOT NULL,
		clock_out             TEXT,
		effective_work_start  TEXT,
		work_duration_minutes TEXT,
		salary_earned         TEXT,
		deduction_amount      TEXT,
		is_late               INTEGER NOT NULL DEFAULT 0,
		late_minutes          INTEGER NOT NULL DEFAULT 0,
		payroll_period_id     TEXT REFERENCES payroll_periods(id),
		payroll_locked        INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL,
		UNIQUE (employee_id, date, session_type)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_sessions_open
		ON attendance_sessions(employee_id) WHERE clock_out IS NULL;
	CREATE INDEX IF NOT EXISTS idx_attendance_sessions_date
		ON attendance_sessions(date);

	CREATE TABLE IF NOT EXISTS advances (
		id                TEXT PRIMARY KEY,
		employee_id       TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		amount            TEXT NOT NULL,
		note              TEXT,
		date              TEXT NOT NULL,
		payroll_period_id TEXT REFERENCES payroll_periods(id),
		created_at        TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_advances_employee_date
		ON advances(employee_id, date);
	`
	_, err := s.Exec(schema)
	return err
}
