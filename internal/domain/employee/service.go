package employee

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type EmployeeService interface {
	Onboard(ctx context.Context, req OnboardRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, session user.Session, id string) (EmployeeResponse, error)
	List(ctx context.Context, session user.Session, filter ListFilter) (ListResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	// Delete deactivates the employee. Records are kept for payroll and history.
	Delete(ctx context.Context, session user.Session, id string) error
}
