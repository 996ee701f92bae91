package employee

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// OnboardRequest creates the login account, the employee record and the
// year's leave balances in one go.
type OnboardRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required"`
	Role          string          `json:"role" validate:"required,oneof=ADMIN HR MANAGER EMPLOYEE"`
	EmployeeCode  string          `json:"employee_code" validate:"required,max=50"`
	ManagerID     *string         `json:"manager_id,omitempty"`
	DepartmentID  *string         `json:"department_id,omitempty"`
	DesignationID *string         `json:"designation_id,omitempty"`
	Salary        decimal.Decimal `json:"salary"`
	JoiningDate   string          `json:"joining_date" validate:"required"`
	Status        string          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE TERMINATED"`
}

func (r *OnboardRequest) Validate() error {
	errs := validator.Struct(r)

	if !validator.IsEmpty(r.Password) && !validator.IsStrongPassword(r.Password) {
		errs.Add("password", "password must contain at least 8 characters, one uppercase letter, one lowercase letter, and one number")
	}
	if !r.Salary.IsPositive() {
		errs.Add("salary", "salary must be greater than 0")
	}
	if r.JoiningDate != "" {
		if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
			errs.Add("joining_date", "joining_date must be in YYYY-MM-DD format")
		}
	}
	r.ManagerID = blankToNil(r.ManagerID)
	r.DepartmentID = blankToNil(r.DepartmentID)
	r.DesignationID = blankToNil(r.DesignationID)

	return errs.Err()
}

func blankToNil(s *string) *string {
	if s == nil || validator.IsEmpty(*s) {
		return nil
	}
	return s
}

// UpdateEmployeeRequest changes only the fields present. An empty string for
// manager_id, department_id or designation_id clears the reference.
type UpdateEmployeeRequest struct {
	EmployeeCode  *string          `json:"employee_code,omitempty" validate:"omitempty,max=50"`
	ManagerID     *string          `json:"manager_id,omitempty"`
	DepartmentID  *string          `json:"department_id,omitempty"`
	DesignationID *string          `json:"designation_id,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	JoiningDate   *string          `json:"joining_date,omitempty"`
	Status        *string          `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE TERMINATED"`

	ParsedJoiningDate *time.Time `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)

	if r.EmployeeCode != nil && validator.IsEmpty(*r.EmployeeCode) {
		errs.Add("employee_code", "employee_code must not be empty")
	}
	if r.Salary != nil && !r.Salary.IsPositive() {
		errs.Add("salary", "salary must be greater than 0")
	}
	if r.JoiningDate != nil {
		d, ok := validator.IsValidDate(*r.JoiningDate)
		if ok {
			r.ParsedJoiningDate = &d
		} else {
			errs.Add("joining_date", "joining_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type ListFilter struct {
	Search        string
	ManagerID     string
	DepartmentID  string
	DesignationID string
	Status        string
	Page          int
	PageSize      int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

type EmployeeResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Role            string           `json:"role,omitempty"`
	EmployeeCode    string           `json:"employee_code"`
	ManagerID       *string          `json:"manager_id,omitempty"`
	DepartmentID    *string          `json:"department_id,omitempty"`
	DepartmentName  *string          `json:"department_name,omitempty"`
	DesignationID   *string          `json:"designation_id,omitempty"`
	DesignationName *string          `json:"designation_name,omitempty"`
	Salary          *decimal.Decimal `json:"salary,omitempty"`
	Status          Status           `json:"status"`
	JoiningDate     string           `json:"joining_date"`
	CreatedAt       time.Time        `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		Name:            e.Name,
		Email:           e.Email,
		Role:            e.Role,
		EmployeeCode:    e.EmployeeCode,
		ManagerID:       e.ManagerID,
		DepartmentID:    e.DepartmentID,
		DepartmentName:  e.DepartmentName,
		DesignationID:   e.DesignationID,
		DesignationName: e.DesignationName,
		Salary:          e.Salary,
		Status:          e.Status,
		JoiningDate:     e.JoiningDate.Format(validator.DateLayout),
		CreatedAt:       e.CreatedAt,
	}
}

type ListResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}
