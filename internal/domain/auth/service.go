package auth

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, session user.Session) (UserDetails, error)
}
