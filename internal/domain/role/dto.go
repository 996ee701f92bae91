package role

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateRoleRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Description   *string  `json:"description,omitempty"`
	PermissionIDs []string `json:"permission_ids"`
}

func (r *CreateRoleRequest) Validate() error {
	return validator.Struct(r).Err()
}

type UpdateRoleRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	Description   *string  `json:"description,omitempty"`
	PermissionIDs []string `json:"permission_ids,omitempty"`
}

func (r *UpdateRoleRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	return errs.Err()
}

type PermissionResponse struct {
	ID          string  `json:"id"`
	Resource    string  `json:"resource"`
	Action      string  `json:"action"`
	Description *string `json:"description,omitempty"`
}

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	IsSystem    bool                 `json:"is_system"`
	Permissions []PermissionResponse `json:"permissions"`
	UserCount   int                  `json:"user_count"`
	CreatedAt   time.Time            `json:"created_at"`
}

type PermissionCatalogResponse struct {
	Permissions        []PermissionResponse            `json:"permissions"`
	GroupedPermissions map[string][]PermissionResponse `json:"grouped_permissions"`
}

func ToPermissionResponse(p Permission) PermissionResponse {
	return PermissionResponse{ID: p.ID, Resource: p.Resource, Action: p.Action, Description: p.Description}
}

func ToRoleResponse(r Role) RoleResponse {
	perms := make([]PermissionResponse, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, ToPermissionResponse(p))
	}
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: perms,
		UserCount:   r.UserCount,
		CreatedAt:   r.CreatedAt,
	}
}
