package jwt

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	in := user.Session{
		UserID:       "u1",
		EmployeeID:   "e1",
		Email:        "jane@example.com",
		Role:         user.RoleManager,
		Capabilities: user.NewCapabilitySet(user.CapLeavesApprove, user.CapLeavesView),
	}
	token, expiresAt, err := svc.GenerateAccessToken(in)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	out, err := SessionFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.EmployeeID, out.EmployeeID)
	assert.Equal(t, in.Role, out.Role)
	assert.True(t, out.Can(user.CapLeavesApprove))
	assert.False(t, out.Can(user.CapPayrollGenerate))
}

func TestSessionFromClaims_Rejects(t *testing.T) {
	_, err := SessionFromClaims(map[string]interface{}{"user_id": "u1", "role": "HR", "type": "refresh"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = SessionFromClaims(map[string]interface{}{"user_id": "u1", "role": "ROOT", "type": "access"})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestNewJWTService_BadExpiration(t *testing.T) {
	_, err := NewJWTService("s", "forever")
	assert.Error(t, err)
}
