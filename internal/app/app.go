// Package app assembles stores, services and handlers from configuration.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/config"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/report"
	appHTTP "github.com/cmlabs-hris/payroll-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/localtime"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/payroll-attendance-go/internal/service/attendance"
	payrollService "github.com/cmlabs-hris/payroll-attendance-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/payroll-attendance-go/internal/service/report"
)

// Store is the set of repositories backing every service.
type Store struct {
	Transactor database.Transactor
	Sessions   attendance.SessionRepository
	Employees  employee.EmployeeRepository
	Periods    payroll.PeriodRepository
	Advances   payroll.AdvanceRepository
	Close      func() error
}

// OpenStore connects to the configured driver. Postgres migrations are applied
// when migrate is true; the SQLite schema is always ensured on open.
func OpenStore(cfg *config.Config, migrate bool) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if migrate {
			if err := database.RunMigrations(db); err != nil {
				db.Close()
				return nil, err
			}
		}
		return &Store{
			Transactor: postgresql.NewTransactor(db),
			Sessions:   postgresql.NewSessionRepository(db),
			Employees:  postgresql.NewEmployeeRepository(db),
			Periods:    postgresql.NewPeriodRepository(db),
			Advances:   postgresql.NewAdvanceRepository(db),
			Close: func() error {
				db.Close()
				return nil
			},
		}, nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		db.CallTimeout = cfg.Database.Timeout
		return NewSQLiteStore(db), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NewSQLiteStore wraps an already opened SQLite database.
func NewSQLiteStore(db *database.SQLiteDB) *Store {
	return &Store{
		Transactor: sqlite.NewTransactor(db),
		Sessions:   sqlite.NewSessionRepository(db),
		Employees:  sqlite.NewEmployeeRepository(db),
		Periods:    sqlite.NewPeriodRepository(db),
		Advances:   sqlite.NewAdvanceRepository(db),
		Close:      db.Close,
	}
}

// Services holds the business layer built on top of a Store.
type Services struct {
	Translator *localtime.Translator
	Clock      localtime.Clock
	Finalizer  attendance.Finalizer
	Sweeper    attendance.Sweeper
	Attendance attendance.AttendanceService
	Periods    payroll.PeriodService
	Advances   payroll.AdvanceService
	Reports    report.ReportService
}

func NewServices(store *Store, translator *localtime.Translator, clock localtime.Clock) *Services {
	finalizer := attendanceService.NewFinalizer(
		store.Transactor,
		store.Sessions,
		store.Employees,
		store.Periods,
		translator,
	)
	sweeper := attendanceService.NewSweeper(store.Sessions, finalizer, translator)

	return &Services{
		Translator: translator,
		Clock:      clock,
		Finalizer:  finalizer,
		Sweeper:    sweeper,
		Attendance: attendanceService.NewAttendanceService(
			store.Sessions,
			store.Employees,
			store.Periods,
			finalizer,
			sweeper,
			translator,
			clock,
		),
		Periods: payrollService.NewPeriodService(
			store.Transactor,
			store.Periods,
			store.Sessions,
			sweeper,
			translator,
			clock,
		),
		Advances: payrollService.NewAdvanceService(
			store.Advances,
			store.Periods,
			store.Employees,
			translator,
			clock,
		),
		Reports: reportService.NewReportService(
			store.Sessions,
			store.Employees,
			store.Periods,
			store.Advances,
			sweeper,
			translator,
			clock,
		),
	}
}

// NewHandler builds the HTTP router over svc.
func NewHandler(cfg *config.Config, jwtService jwt.Service, svc *Services) http.Handler {
	attendanceHandler := appHTTP.NewAttendanceHandler(svc.Attendance, svc.Reports)
	payrollHandler := appHTTP.NewPayrollHandler(svc.Periods, svc.Reports)
	advanceHandler := appHTTP.NewAdvanceHandler(svc.Advances)
	reportHandler := appHTTP.NewReportHandler(svc.Reports)

	return appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		payrollHandler,
		advanceHandler,
		reportHandler,
	)
}

// NewLogger returns the process-wide structured logger.
func NewLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(
		slog.String("app", "payroll-attendance"),
		slog.String("env", cfg.App.Env),
	)
}
