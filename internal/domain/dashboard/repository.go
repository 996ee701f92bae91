package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	CountActiveEmployees(ctx context.Context) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	RecentJoiners(ctx context.Context, limit int) ([]RecentJoiner, error)
	// CountPendingLeaves counts every pending leave when managerID is empty,
	// otherwise only those of the manager's direct reports.
	CountPendingLeaves(ctx context.Context, managerID string) (int64, error)
	// CountAttendance follows the same managerID rule for rows on date.
	CountAttendance(ctx context.Context, date time.Time, managerID string) (int64, error)
}
