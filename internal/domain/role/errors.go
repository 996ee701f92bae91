package role

import "errors"

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleNameExists     = errors.New("role with this name already exists")
	ErrSystemRole         = errors.New("system roles cannot be deleted")
	ErrRoleInUse          = errors.New("role is assigned to users")
	ErrPermissionNotFound = errors.New("one or more permissions not found")
)
