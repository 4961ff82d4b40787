package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type employeeRepository struct {
	db  *database.SQLiteDB
	now func() time.Time
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepository{db: db, now: time.Now}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, position, monthly_salary, work_hours_per_day, status, created_at, updated_at
		FROM employees
		WHERE id = ?
	`

	var (
		emp                                  employee.Employee
		monthly, hours, status, created, upd string
	)
	err := q.QueryRowContext(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Position, &monthly, &hours, &status, &created, &upd,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	emp.Status = employee.Status(status)
	if emp.MonthlySalary, err = parseDecimal(monthly); err != nil {
		return employee.Employee{}, err
	}
	if emp.WorkHoursPerDay, err = parseDecimal(hours); err != nil {
		return employee.Employee{}, err
	}
	if emp.CreatedAt, err = parseTime(created); err != nil {
		return employee.Employee{}, err
	}
	if emp.UpdatedAt, err = parseTime(upd); err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
		}
		emp.ID = id.String()
	}
	if emp.Status == "" {
		emp.Status = employee.StatusActive
	}
	now := r.now().UTC().Truncate(time.Microsecond)
	emp.CreatedAt = now
	emp.UpdatedAt = now

	query := `
		INSERT INTO employees (id, name, position, monthly_salary, work_hours_per_day, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.Position, emp.MonthlySalary.String(), emp.WorkHoursPerDay.String(),
		string(emp.Status), formatTime(now), formatTime(now),
	)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := r.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'active'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}
