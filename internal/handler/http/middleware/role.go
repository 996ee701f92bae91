package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

// RequireCapability lets the request through when the session holds any of
// caps.
func RequireCapability(caps ...user.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := user.SessionFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrSessionMissing)
				return
			}

			for _, c := range caps {
				if session.Can(c) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", caps[0]))
		})
	}
}

// RequireRole lets the request through when the session's role is one of
// roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := user.SessionFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrSessionMissing)
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, fmt.Sprintf("Access denied for role '%s'", session.Role))
		})
	}
}
