package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// session returns the caller placed in the context by middleware.AuthRequired.
// It writes a 401 and reports false when none is present.
func session(w http.ResponseWriter, r *http.Request) (user.Session, bool) {
	s, ok := user.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, user.ErrSessionMissing)
		return user.Session{}, false
	}
	return s, true
}

// decode reads a JSON body into dst. It writes a 400 and reports false on
// malformed input.
func decode(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// getDateQueryParam parses a YYYY-MM-DD query parameter. Absent or invalid
// values yield the zero time.
func getDateQueryParam(r *http.Request, key string) time.Time {
	d, _ := validator.IsValidDate(r.URL.Query().Get(key))
	return d
}
