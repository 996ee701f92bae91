package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedOut  = errors.New("already clocked out for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnknownEmployees   = errors.New("one or more employee IDs are invalid")
	ErrCheckOutBeforeIn   = errors.New("check_out must be after check_in")
	ErrEmployeeRequired   = errors.New("employee record required")
	ErrOnLeave            = errors.New("on approved leave today")
)
