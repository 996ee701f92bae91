package designation

import "context"

type DesignationRepository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	List(ctx context.Context, filter ListFilter) ([]Designation, int64, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, d Designation) error
	Delete(ctx context.Context, id string) error
}
