package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type AttendanceService interface {
	Clock(ctx context.Context, session user.Session) (ClockResponse, error)
	Summary(ctx context.Context, session user.Session, employeeID string, month, year int) (Summary, error)
	ListMine(ctx context.Context, session user.Session, month, year int) ([]AttendanceResponse, error)
	ListTeam(ctx context.Context, session user.Session, filter ListFilter) (ListResponse, error)
	ListAll(ctx context.Context, filter ListFilter) (ListResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	BulkMark(ctx context.Context, req BulkMarkRequest) ([]AttendanceResponse, error)
	MarkAbsent(ctx context.Context) (int64, error)
}
