package employee

import "context"

// EmployeeRepository is the read side of the employee-management collaborator.
// Create exists for fixture seeding only.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no employee has the id.
	GetByID(ctx context.Context, id string) (Employee, error)

	// Create inserts a new employee record
	Create(ctx context.Context, employee Employee) (Employee, error)

	// CountActive counts employees with status active
	CountActive(ctx context.Context) (int64, error)
}
