package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active, please contact HR")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
