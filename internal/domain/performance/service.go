package performance

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type PerformanceService interface {
	Add(ctx context.Context, session user.Session, req AddAppraisalRequest) (AppraisalResponse, error)
	Update(ctx context.Context, session user.Session, id string, req UpdateAppraisalRequest) (AppraisalResponse, error)
	ListByEmployee(ctx context.Context, session user.Session, employeeID string) ([]AppraisalResponse, error)
}
