package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type RoleServiceImpl struct {
	tx          database.Transactor
	roles       role.RoleRepository
	permissions role.PermissionRepository
}

func NewRoleService(tx database.Transactor, roles role.RoleRepository, permissions role.PermissionRepository) role.RoleService {
	return &RoleServiceImpl{tx: tx, roles: roles, permissions: permissions}
}

// List implements role.RoleService.
func (s *RoleServiceImpl) List(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	out := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, role.ToRoleResponse(r))
	}
	return out, nil
}

// GetByID implements role.RoleService.
func (s *RoleServiceImpl) GetByID(ctx context.Context, id string) (role.RoleResponse, error) {
	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToRoleResponse(r), nil
}

// Create implements role.RoleService.
func (s *RoleServiceImpl) Create(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}
	name := strings.TrimSpace(req.Name)

	exists, err := s.roles.ExistsByName(ctx, name)
	if err != nil {
		return role.RoleResponse{}, fmt.Errorf("failed to check role name: %w", err)
	}
	if exists {
		return role.RoleResponse{}, role.ErrRoleNameExists
	}
	if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
		return role.RoleResponse{}, err
	}

	var created role.Role
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.roles.Create(ctx, role.Role{Name: name, Description: req.Description})
		if err != nil {
			return err
		}
		return s.roles.ReplacePermissions(ctx, created.ID, req.PermissionIDs)
	})
	if err != nil {
		return role.RoleResponse{}, err
	}

	return s.GetByID(ctx, created.ID)
}

// Update implements role.RoleService.
func (s *RoleServiceImpl) Update(ctx context.Context, id string, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	current, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, current.Name) {
			exists, err := s.roles.ExistsByName(ctx, name)
			if err != nil {
				return role.RoleResponse{}, fmt.Errorf("failed to check role name: %w", err)
			}
			if exists {
				return role.RoleResponse{}, role.ErrRoleNameExists
			}
		}
		current.Name = name
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.PermissionIDs != nil {
		if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
			return role.RoleResponse{}, err
		}
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.roles.Update(ctx, current); err != nil {
			return err
		}
		if req.PermissionIDs == nil {
			return nil
		}
		return s.roles.ReplacePermissions(ctx, id, req.PermissionIDs)
	})
	if err != nil {
		return role.RoleResponse{}, err
	}

	return s.GetByID(ctx, id)
}

// Delete implements role.RoleService.
func (s *RoleServiceImpl) Delete(ctx context.Context, id string) error {
	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.IsSystem {
		return role.ErrSystemRole
	}
	if r.UserCount > 0 {
		return role.ErrRoleInUse
	}
	return s.roles.Delete(ctx, id)
}

// Permissions implements role.RoleService.
func (s *RoleServiceImpl) Permissions(ctx context.Context) (role.PermissionCatalogResponse, error) {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return role.PermissionCatalogResponse{}, fmt.Errorf("failed to list permissions: %w", err)
	}

	resp := role.PermissionCatalogResponse{
		Permissions:        make([]role.PermissionResponse, 0, len(perms)),
		GroupedPermissions: make(map[string][]role.PermissionResponse),
	}
	for _, p := range perms {
		pr := role.ToPermissionResponse(p)
		resp.Permissions = append(resp.Permissions, pr)
		resp.GroupedPermissions[p.Resource] = append(resp.GroupedPermissions[p.Resource], pr)
	}
	return resp, nil
}

func (s *RoleServiceImpl) checkPermissions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	n, err := s.permissions.CountByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check permissions: %w", err)
	}
	if n != len(unique) {
		return role.ErrPermissionNotFound
	}
	return nil
}
