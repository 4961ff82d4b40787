package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	ctx, cancel := e.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, name, position, monthly_salary, work_hours_per_day, status, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var (
		emp    employee.Employee
		status string
	)
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Position, &emp.MonthlySalary, &emp.WorkHoursPerDay,
		&status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	emp.Status = employee.Status(status)

	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	ctx, cancel := e.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, e.db)

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

	query := `
		INSERT INTO employees (id, name, position, monthly_salary, work_hours_per_day, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID, emp.Name, emp.Position, emp.MonthlySalary, emp.WorkHoursPerDay, string(emp.Status),
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// CountActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := e.db.Bound(ctx)
	defer cancel()

	q := GetQuerier(ctx, e.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'active'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}
