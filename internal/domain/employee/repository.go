package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByCode(ctx context.Context, employeeCode string) (bool, error)
	Update(ctx context.Context, e Employee) error
	SetStatus(ctx context.Context, id string, status Status) error
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	// CountExisting returns how many of ids refer to existing employees.
	CountExisting(ctx context.Context, ids []string) (int, error)
}
