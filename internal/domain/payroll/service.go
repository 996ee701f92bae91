package payroll

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type PayrollService interface {
	Generate(ctx context.Context, req GenerateRequest) (RecordResponse, error)
	Preview(ctx context.Context, employeeID string) (PreviewResponse, error)
	GetByID(ctx context.Context, session user.Session, id string) (RecordResponse, error)
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
	ListMine(ctx context.Context, session user.Session, filter ListFilter) (ListResponse, error)
	Payslip(ctx context.Context, session user.Session, id string) (Payslip, error)
}

type ComponentTypeService interface {
	Create(ctx context.Context, req CreateComponentTypeRequest) (ComponentTypeResponse, error)
	GetByID(ctx context.Context, id string) (ComponentTypeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]ComponentTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateComponentTypeRequest) (ComponentTypeResponse, error)
	Delete(ctx context.Context, id string) error
}
