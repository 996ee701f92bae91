package performance

import "context"

type AppraisalRepository interface {
	Create(ctx context.Context, a Appraisal) (Appraisal, error)
	GetByID(ctx context.Context, id string) (Appraisal, error)
	Update(ctx context.Context, a Appraisal) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Appraisal, error)
}
