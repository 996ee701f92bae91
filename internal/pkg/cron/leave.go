package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

type LeaveJobs struct {
	balanceService leave.LeaveBalanceService
	spec           string
	now            func() time.Time
}

func NewLeaveJobs(balanceService leave.LeaveBalanceService, spec string) *LeaveJobs {
	return &LeaveJobs{balanceService: balanceService, spec: spec, now: time.Now}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("initialize_leave_balances", j.spec, j.InitializeYearBalances)
}

// InitializeYearBalances seeds default balances for the current year.
// Existing rows are left untouched.
func (j *LeaveJobs) InitializeYearBalances(ctx context.Context) error {
	year := j.now().Year()
	n, err := j.balanceService.InitializeAll(ctx, year)
	if err != nil {
		return err
	}
	slog.Info("Cron: leave balances initialized", "year", year, "created", n)
	return nil
}
