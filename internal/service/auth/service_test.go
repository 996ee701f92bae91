package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

type fakeUserRepo struct {
	users  map[string]user.User
	custom map[string][]user.Capability
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	return nil
}

func (f *fakeUserRepo) CustomCapabilities(ctx context.Context, userID string) ([]user.Capability, error) {
	return f.custom[userID], nil
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T, repo *fakeUserRepo) (auth.AuthService, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Name: "Asha", Email: "asha@example.com", PasswordHash: hash(t, "Passw0rd"),
			Role: user.RoleManager, EmployeeID: strPtr("e1"), EmployeeStatus: strPtr("ACTIVE")},
	}}
	svc, jwtService := newTestService(t, repo)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: " asha@example.com ", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "e1", resp.UserDetails.EmployeeID)
	assert.Contains(t, resp.UserDetails.Permissions["leaves"], "approve")

	token, err := jwtService.JWTAuth().Decode(resp.Token)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	session, err := jwt.SessionFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.True(t, session.Can(user.CapLeavesApprove))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "asha@example.com", PasswordHash: hash(t, "Passw0rd"), Role: user.RoleEmployee},
	}}
	svc, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "Passw0rd"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_InactiveEmployeeRefused(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Email: "gone@example.com", PasswordHash: hash(t, "Passw0rd"),
			Role: user.RoleEmployee, EmployeeID: strPtr("e1"), EmployeeStatus: strPtr("TERMINATED")},
	}}
	svc, _ := newTestService(t, repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "gone@example.com", Password: "Passw0rd"})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestLogin_CustomRoleReplacesDefaults(t *testing.T) {
	repo := &fakeUserRepo{
		users: map[string]user.User{
			"u1": {ID: "u1", Email: "hr@example.com", PasswordHash: hash(t, "Passw0rd"),
				Role: user.RoleEmployee, RoleID: strPtr("r1")},
		},
		custom: map[string][]user.Capability{"u1": {user.CapReportsView}},
	}
	svc, _ := newTestService(t, repo)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "hr@example.com", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"reports": {"view"}}, resp.UserDetails.Permissions)
}

func TestMe(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]user.User{
		"u1": {ID: "u1", Name: "Asha", Email: "asha@example.com", Role: user.RoleEmployee},
	}}
	svc, _ := newTestService(t, repo)

	session := user.Session{UserID: "u1", EmployeeID: "e1", Role: user.RoleEmployee,
		Capabilities: user.NewCapabilitySet(user.CapLeavesApply)}
	details, err := svc.Me(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "Asha", details.Name)
	assert.Equal(t, []string{"apply"}, details.Permissions["leaves"])

	_, err = svc.Me(context.Background(), user.Session{UserID: "ghost"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
