package role

import "context"

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, r Role) (Role, error)
	Update(ctx context.Context, r Role) error
	Delete(ctx context.Context, id string) error
	// ReplacePermissions drops the role's grants and assigns permissionIDs.
	ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error
}

type PermissionRepository interface {
	List(ctx context.Context) ([]Permission, error)
	CountByIDs(ctx context.Context, ids []string) (int, error)
}
