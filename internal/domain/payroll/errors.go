package payroll

import "errors"

var (
	ErrComponentTypeNotFound      = errors.New("payroll component not found")
	ErrComponentTypeInUse         = errors.New("payroll component is referenced by payroll records")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrEmployeeHasNoSalary        = errors.New("employee or salary not found")
	ErrNoComponents               = errors.New("at least one payroll component is required")
)
