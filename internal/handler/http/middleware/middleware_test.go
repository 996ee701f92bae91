package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, want *user.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := user.SessionFromContext(r.Context())
		require.True(t, ok)
		if want != nil {
			*want = session
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	token, _, err := svc.GenerateAccessToken(user.Session{
		UserID:       "u1",
		EmployeeID:   "e1",
		Role:         user.RoleManager,
		Capabilities: user.NewCapabilitySet(user.CapLeavesTeam),
	})
	require.NoError(t, err)

	var got user.Session
	h := jwtauth.Verifier(svc.JWTAuth())(AuthRequired(okHandler(t, &got)))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "e1", got.EmployeeID)
		assert.True(t, got.Can(user.CapLeavesTeam))
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other, err := jwt.NewJWTService("other-secret", "1h")
		require.NoError(t, err)
		forged, _, err := other.GenerateAccessToken(user.Session{UserID: "u1", Role: user.RoleAdmin})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func withSession(s user.Session, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(user.WithSession(r.Context(), s)))
	})
}

func TestRequireCapability(t *testing.T) {
	guard := RequireCapability(user.CapLeavesApprove, user.CapLeavesReject)
	employee := user.Session{UserID: "u1", Role: user.RoleEmployee, Capabilities: user.ResolveCapabilities(user.RoleEmployee, nil)}
	manager := user.Session{UserID: "u2", Role: user.RoleManager, Capabilities: user.ResolveCapabilities(user.RoleManager, nil)}

	rec := httptest.NewRecorder()
	withSession(employee, guard(okHandler(t, nil))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	withSession(manager, guard(okHandler(t, nil))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	guard(okHandler(t, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(user.RoleAdmin, user.RoleHR)

	rec := httptest.NewRecorder()
	withSession(user.Session{Role: user.RoleHR}, guard(okHandler(t, nil))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	withSession(user.Session{Role: user.RoleManager}, guard(okHandler(t, nil))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireEmployee(t *testing.T) {
	rec := httptest.NewRecorder()
	withSession(user.Session{UserID: "admin", Role: user.RoleAdmin}, RequireEmployee(okHandler(t, nil))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
