package auth

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r).Err()
}

type LoginResponse struct {
	Token       string      `json:"token"`
	ExpiresAt   int64       `json:"expires_at"`
	UserDetails UserDetails `json:"user_details"`
}

type UserDetails struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	RoleID      *string             `json:"role_id,omitempty"`
	EmployeeID  string              `json:"employee_id"`
	Permissions map[string][]string `json:"permissions"`
}
