package leave

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type LeaveRequestService interface {
	Apply(ctx context.Context, session user.Session, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	Update(ctx context.Context, session user.Session, id string, req UpdateLeaveRequest) (LeaveRequestResponse, error)
	UpdateStatus(ctx context.Context, session user.Session, id string, req UpdateStatusRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, session user.Session, id string) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, session user.Session, id string) (LeaveRequestResponse, error)
	ListMine(ctx context.Context, session user.Session, filter ListFilter) (ListResponse, error)
	ListTeam(ctx context.Context, session user.Session, filter ListFilter) (ListResponse, error)
	ListAll(ctx context.Context, filter ListFilter) (ListResponse, error)
}

type LeaveBalanceService interface {
	Get(ctx context.Context, session user.Session, employeeID string, year int) ([]BalanceResponse, error)
	Summary(ctx context.Context, session user.Session, employeeID string, year int) (SummaryResponse, error)
	SetTotal(ctx context.Context, employeeID string, req SetTotalRequest) (BalanceResponse, error)
	Initialize(ctx context.Context, employeeID string, year int) (int, error)
	InitializeAll(ctx context.Context, year int) (int, error)
}
