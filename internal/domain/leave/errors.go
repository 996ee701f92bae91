package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveBalanceNotFound = errors.New("leave balance not found for this leave type and year")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrOverlappingLeave     = errors.New("overlapping leave request exists")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrStartDateInPast      = errors.New("start date cannot be in the past")
	ErrNoWorkingDays        = errors.New("leave must include at least one working day")
	ErrInvalidTransition    = errors.New("leave status transition not allowed")
	ErrStatusChanged        = errors.New("leave request was modified concurrently")
	ErrNotEditable          = errors.New("only pending leave requests can be edited")
	ErrTotalBelowUsed       = errors.New("total leaves cannot be less than used leaves")
	ErrEmployeeRequired     = errors.New("employee record required")
	ErrForbidden            = errors.New("not allowed to act on this leave request")
)
