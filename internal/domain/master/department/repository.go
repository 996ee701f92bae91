package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context, filter ListFilter) ([]Department, int64, error)
	// ExistsByName matches name case-insensitively, ignoring excludeID.
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, d Department) error
	Delete(ctx context.Context, id string) error
}
