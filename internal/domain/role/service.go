package role

import "context"

type RoleService interface {
	List(ctx context.Context) ([]RoleResponse, error)
	GetByID(ctx context.Context, id string) (RoleResponse, error)
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error)
	Delete(ctx context.Context, id string) error
	Permissions(ctx context.Context) (PermissionCatalogResponse, error)
}
