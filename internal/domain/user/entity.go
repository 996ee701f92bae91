package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full system access
	RoleHR       Role = "HR"       // HR pool: receives every fan-out notification
	RoleManager  Role = "MANAGER"  // Approves team leave
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	RoleID       *string // custom role overriding the built-in capabilities
	Contact      Contact
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID      *string
	EmployeeStatus  *string
	RoleName        *string
	DepartmentName  *string
	DesignationName *string
}

type Contact struct {
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Country *string `json:"country,omitempty"`
	ZipCode *string `json:"zip_code,omitempty"`
}

// IsPrivileged reports whether the user can act on any employee's records.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleAdmin || u.Role == RoleHR
}
