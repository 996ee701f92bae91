package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrSessionMissing          = errors.New("session missing from context")
	ErrCustomRoleNotFound      = errors.New("custom role not found")
)
