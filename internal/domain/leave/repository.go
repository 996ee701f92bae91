package leave

import "context"

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// ListBlocking returns the employee's PENDING and APPROVED leaves,
	// optionally excluding one id.
	ListBlocking(ctx context.Context, employeeID string, excludeID string) ([]LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	UpdateDetails(ctx context.Context, request LeaveRequest) error
	// CompareAndSetStatus moves the request from prev to next. It returns
	// ErrStatusChanged when the stored status is no longer prev.
	CompareAndSetStatus(ctx context.Context, id string, prev, next Status, approvedBy *string, deductedDays int) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Get(ctx context.Context, employeeID string, year int, leaveType LeaveType) (LeaveBalance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	Upsert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	// CreateMissing inserts the given balances, skipping types that already
	// exist, and returns how many were created.
	CreateMissing(ctx context.Context, balances []LeaveBalance) (int, error)
	// AdjustUsed applies delta to used_leaves in one conditional statement,
	// keeping 0 <= used <= total.
	AdjustUsed(ctx context.Context, employeeID string, year int, leaveType LeaveType, delta int) error
}
