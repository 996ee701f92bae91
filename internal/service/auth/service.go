package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if userData.EmployeeStatus != nil && !employee.Status(*userData.EmployeeStatus).CanLogin() {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	caps, err := a.capabilities(ctx, userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	session := user.Session{
		UserID:       userData.ID,
		Email:        userData.Email,
		Role:         userData.Role,
		Capabilities: caps,
	}
	if userData.EmployeeID != nil {
		session.EmployeeID = *userData.EmployeeID
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(session)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		UserDetails: details(userData, session),
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, session user.Session) (auth.UserDetails, error) {
	userData, err := a.UserRepository.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.UserDetails{}, auth.ErrInvalidToken
		}
		return auth.UserDetails{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return details(userData, session), nil
}

func (a *AuthServiceImpl) capabilities(ctx context.Context, u user.User) (user.CapabilitySet, error) {
	if u.RoleID == nil {
		return user.ResolveCapabilities(u.Role, nil), nil
	}
	custom, err := a.UserRepository.CustomCapabilities(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}
	return user.ResolveCapabilities(u.Role, custom), nil
}

func details(u user.User, session user.Session) auth.UserDetails {
	return auth.UserDetails{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		RoleID:      u.RoleID,
		EmployeeID:  session.EmployeeID,
		Permissions: session.Capabilities.Grouped(),
	}
}
