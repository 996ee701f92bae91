package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrManagerNotFound     = errors.New("manager not found")
	ErrUnauthorized        = errors.New("unauthorized to access this employee")
	ErrInvalidManager      = errors.New("employee cannot report to themselves or their own reports")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDesignationNotFound = errors.New("designation not found")
	ErrSelfDeactivation    = errors.New("cannot deactivate your own employee record")
)
