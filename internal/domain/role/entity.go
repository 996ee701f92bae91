package role

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// Role is a named bundle of permissions assignable to users in place of the
// built-in role capabilities.
type Role struct {
	ID          string
	Name        string
	Description *string
	IsSystem    bool
	Permissions []Permission
	UserCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Permission struct {
	ID          string
	Resource    string
	Action      string
	Description *string
}

func (p Permission) Capability() user.Capability {
	return user.NewCapability(p.Resource, p.Action)
}
