package cron

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	spec              string
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, spec string) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService, spec: spec}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("mark_absent_employees", j.spec, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees records ABSENT for active employees without a
// record on the previous working day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	n, err := j.attendanceService.MarkAbsent(ctx)
	if err != nil {
		return err
	}
	slog.Info("Cron: absent employees marked", "count", n)
	return nil
}
