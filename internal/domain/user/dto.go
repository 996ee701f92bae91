package user

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ListFilter struct {
	Search   string
	Role     string
	Page     int
	PageSize int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

// UpdateUserRequest changes only the fields present. Role and RoleID need
// the users:edit capability. An empty role_id drops the custom role.
type UpdateUserRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Role    *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN HR MANAGER EMPLOYEE"`
	RoleID  *string `json:"role_id,omitempty"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State   *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Country *string `json:"country,omitempty" validate:"omitempty,max=100"`
	ZipCode *string `json:"zip_code,omitempty" validate:"omitempty,max=20"`
}

func (r *UpdateUserRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	return errs.Err()
}

// ChangesAccess reports whether the request touches the role or custom role.
func (r *UpdateUserRequest) ChangesAccess() bool {
	return r.Role != nil || r.RoleID != nil
}

type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	RoleID      *string   `json:"role_id,omitempty"`
	RoleName    *string   `json:"role_name,omitempty"`
	EmployeeID  *string   `json:"employee_id,omitempty"`
	Department  *string   `json:"department,omitempty"`
	Designation *string   `json:"designation,omitempty"`
	Contact     Contact   `json:"contact"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		RoleID:      u.RoleID,
		RoleName:    u.RoleName,
		EmployeeID:  u.EmployeeID,
		Department:  u.DepartmentName,
		Designation: u.DesignationName,
		Contact:     u.Contact,
		CreatedAt:   u.CreatedAt,
	}
}

type ManagerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LeaveBalanceSummary struct {
	LeaveType string `json:"leave_type"`
	Total     int    `json:"total"`
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
}

// UserDetailResponse adds the employment view of a user: manager and the
// current year's leave balances.
type UserDetailResponse struct {
	UserResponse
	EmployeeCode  *string               `json:"employee_code,omitempty"`
	Manager       *ManagerSummary       `json:"manager,omitempty"`
	LeaveBalances []LeaveBalanceSummary `json:"leave_balances"`
}

type ListResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
}
