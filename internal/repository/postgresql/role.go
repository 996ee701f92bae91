package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

// List implements role.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.name, r.description, r.is_system, r.created_at, r.updated_at,
			   (SELECT COUNT(*) FROM users u WHERE u.role_id = r.id) AS user_count
		FROM roles r
		ORDER BY r.created_at
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]role.Role, 0)
	for rows.Next() {
		var ro role.Role
		if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, &ro.IsSystem, &ro.CreatedAt, &ro.UpdatedAt, &ro.UserCount); err != nil {
			return nil, err
		}
		roles = append(roles, ro)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	grants, err := r.permissionsByRole(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range roles {
		roles[i].Permissions = grants[roles[i].ID]
	}
	return roles, nil
}

// GetByID implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.name, r.description, r.is_system, r.created_at, r.updated_at,
			   (SELECT COUNT(*) FROM users u WHERE u.role_id = r.id) AS user_count
		FROM roles r
		WHERE r.id = $1
	`
	var ro role.Role
	err := q.QueryRow(ctx, query, id).Scan(&ro.ID, &ro.Name, &ro.Description, &ro.IsSystem, &ro.CreatedAt, &ro.UpdatedAt, &ro.UserCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, err
	}

	grants, err := r.permissionsByRole(ctx, id)
	if err != nil {
		return role.Role{}, err
	}
	ro.Permissions = grants[id]
	return ro, nil
}

// permissionsByRole loads grants for one role, or for all roles when roleID is empty.
func (r *roleRepositoryImpl) permissionsByRole(ctx context.Context, roleID string) (map[string][]role.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rp.role_id, p.id, p.resource, p.action, p.description
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE ($1 = '' OR rp.role_id::text = $1)
		ORDER BY p.resource, p.action
	`
	rows, err := q.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]role.Permission)
	for rows.Next() {
		var rid string
		var p role.Permission
		if err := rows.Scan(&rid, &p.ID, &p.Resource, &p.Action, &p.Description); err != nil {
			return nil, err
		}
		out[rid] = append(out[rid], p)
	}
	return out, rows.Err()
}

// ExistsByName implements role.RoleRepository.
func (r *roleRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM roles WHERE LOWER(name) = LOWER($1))`, name).Scan(&exists)
	return exists, err
}

// Create implements role.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, ro role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (name, description, is_system)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, ro.Name, ro.Description, ro.IsSystem).Scan(&ro.ID, &ro.CreatedAt, &ro.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, err
	}
	return ro, nil
}

// Update implements role.RoleRepository.
func (r *roleRepositoryImpl) Update(ctx context.Context, ro role.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE roles
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, ro.Name, ro.Description, ro.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return role.ErrRoleNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}
	return nil
}

// Delete implements role.RoleRepository.
func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}
	return nil
}

// ReplacePermissions implements role.RoleRepository.
func (r *roleRepositoryImpl) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	if _, err := q.Exec(ctx, query, roleID, permissionIDs); err != nil {
		if isForeignKeyViolation(err) {
			return role.ErrPermissionNotFound
		}
		return err
	}
	return nil
}

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) role.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

// List implements role.PermissionRepository.
func (r *permissionRepositoryImpl) List(ctx context.Context) ([]role.Permission, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, resource, action, description FROM permissions ORDER BY resource, action`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perms := make([]role.Permission, 0)
	for rows.Next() {
		var p role.Permission
		if err := rows.Scan(&p.ID, &p.Resource, &p.Action, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// CountByIDs implements role.PermissionRepository.
func (r *permissionRepositoryImpl) CountByIDs(ctx context.Context, ids []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var n int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM permissions WHERE id::text = ANY($1)`, ids).Scan(&n)
	return n, err
}
