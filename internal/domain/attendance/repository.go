package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	// CreateCheckIn inserts the day's record unless one already exists. It
	// reports false when another writer created the row first.
	CreateCheckIn(ctx context.Context, a Attendance) (Attendance, bool, error)
	// ClaimCheckIn stamps check_in on a marked row that has none and sets it
	// PRESENT. It reports false when check_in was already set.
	ClaimCheckIn(ctx context.Context, id string, checkIn time.Time) (bool, error)
	// CloseOut sets check_out and total_hours only while check_out is null.
	// It reports false when the record was already closed.
	CloseOut(ctx context.Context, id string, checkOut time.Time, totalHours float64) (bool, error)
	Update(ctx context.Context, a Attendance) error
	// UpsertStatus creates or overwrites the day's status for an employee.
	UpsertStatus(ctx context.Context, employeeID string, date time.Time, status Status) (Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
	// MarkAbsent closes date for active employees without a record. Employees
	// on approved leave covering date get LEAVE, everyone else ABSENT.
	MarkAbsent(ctx context.Context, date time.Time) (int64, error)
}
