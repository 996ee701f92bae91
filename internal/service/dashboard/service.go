package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	balanceRepo leave.LeaveBalanceRepository
	loc         *time.Location
	now         func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, balanceRepo leave.LeaveBalanceRepository, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		balanceRepo:         balanceRepo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// today returns the local calendar date as a UTC midnight.
func (s *DashboardServiceImpl) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Stats returns the section matching the caller's base role. Counts within a
// section are fetched in parallel.
func (s *DashboardServiceImpl) Stats(ctx context.Context, session user.Session) (dashboard.StatsResponse, error) {
	resp := dashboard.StatsResponse{Role: string(session.Role)}

	var err error
	switch session.Role {
	case user.RoleAdmin:
		resp.Admin, err = s.adminStats(ctx)
	case user.RoleHR:
		resp.HR, err = s.hrStats(ctx)
	case user.RoleManager:
		resp.Manager, err = s.managerStats(ctx, session.EmployeeID)
	default:
		resp.Employee, err = s.employeeStats(ctx, session.EmployeeID)
	}
	if err != nil {
		return dashboard.StatsResponse{}, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return resp, nil
}

func (s *DashboardServiceImpl) adminStats(ctx context.Context) (*dashboard.AdminStats, error) {
	stats := &dashboard.AdminStats{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		stats.TotalEmployees = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountDepartments(gCtx)
		stats.TotalDepartments = n
		return err
	})

	g.Go(func() error {
		joiners, err := s.RecentJoiners(gCtx, dashboard.RecentJoinerLimit)
		stats.RecentJoiners = joiners
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardServiceImpl) hrStats(ctx context.Context) (*dashboard.HRStats, error) {
	stats := &dashboard.HRStats{}
	today := s.today()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountPendingLeaves(gCtx, "")
		stats.PendingLeaves = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountAttendance(gCtx, today, "")
		stats.TodayAttendance = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardServiceImpl) managerStats(ctx context.Context, employeeID string) (*dashboard.ManagerStats, error) {
	stats := &dashboard.ManagerStats{}
	// A manager account without an employee record has no team.
	if employeeID == "" {
		return stats, nil
	}
	today := s.today()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountPendingLeaves(gCtx, employeeID)
		stats.TeamLeaves = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountAttendance(gCtx, today, employeeID)
		stats.TeamAttendance = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardServiceImpl) employeeStats(ctx context.Context, employeeID string) (*dashboard.EmployeeStats, error) {
	stats := &dashboard.EmployeeStats{
		Year:          s.today().Year(),
		LeaveBalances: make([]dashboard.BalanceSummary, 0),
	}
	if employeeID == "" {
		return stats, nil
	}

	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, employeeID, stats.Year)
	if err != nil {
		return nil, err
	}
	for _, b := range balances {
		stats.LeaveBalances = append(stats.LeaveBalances, dashboard.BalanceSummary{
			LeaveType: string(b.LeaveType),
			Total:     b.TotalLeaves,
			Used:      b.UsedLeaves,
			Remaining: b.Remaining(),
		})
	}
	return stats, nil
}
