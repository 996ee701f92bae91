package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	UserID        string
	EmployeeCode  string
	ManagerID     *string
	DepartmentID  *string
	DesignationID *string
	Salary        *decimal.Decimal // annual
	Status        Status
	JoiningDate   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	Name            string
	Email           string
	Role            string
	DepartmentName  *string
	DesignationName *string
}

type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusTerminated Status = "TERMINATED"
)

func (s Status) CanLogin() bool {
	return s != StatusInactive && s != StatusTerminated
}

// HasSalary reports whether payroll can be generated for the employee.
func (e Employee) HasSalary() bool {
	return e.Salary != nil && e.Salary.IsPositive()
}
