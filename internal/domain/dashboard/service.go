package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type DashboardService interface {
	Stats(ctx context.Context, session user.Session) (StatsResponse, error)
}
