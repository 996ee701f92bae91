package payroll

import "context"

type ComponentTypeRepository interface {
	Create(ctx context.Context, c ComponentType) (ComponentType, error)
	GetByID(ctx context.Context, id string) (ComponentType, error)
	GetByIDs(ctx context.Context, ids []string) ([]ComponentType, error)
	List(ctx context.Context, activeOnly bool) ([]ComponentType, error)
	Update(ctx context.Context, c ComponentType) error
	Delete(ctx context.Context, id string) error
	IsReferenced(ctx context.Context, id string) (bool, error)
}

type RecordRepository interface {
	// Create inserts the record and its components. It returns
	// ErrPayrollRecordAlreadyExists on a duplicate period.
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}
