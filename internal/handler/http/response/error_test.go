package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("email", "email is required")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verrs, http.StatusBadRequest, CodeValidationError},
		{"business rule", fmt.Errorf("apply: %w", leave.ErrInsufficientBalance), http.StatusBadRequest, CodeValidationError},
		{"clocked out", attendance.ErrAlreadyClockedOut, http.StatusBadRequest, CodeValidationError},
		{"not found", leave.ErrLeaveRequestNotFound, http.StatusNotFound, CodeNotFound},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{"inactive", auth.ErrAccountInactive, http.StatusForbidden, CodeForbidden},
		{"permissions", user.ErrInsufficientPermissions, http.StatusForbidden, CodeForbidden},
		{"duplicate period", payroll.ErrPayrollRecordAlreadyExists, http.StatusConflict, CodeConflict},
		{"manager cycle", employee.ErrInvalidManager, http.StatusBadRequest, CodeValidationError},
		{"unknown placement", employee.ErrDepartmentNotFound, http.StatusBadRequest, CodeValidationError},
		{"missing department", department.ErrDepartmentNotFound, http.StatusNotFound, CodeNotFound},
		{"duplicate department", department.ErrDepartmentNameExists, http.StatusConflict, CodeConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.StatusCode)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("start_date", "start_date is required")

	rec := httptest.NewRecorder()
	HandleError(rec, verrs)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"start_date": "start_date is required"}, body.Errors)
}

func TestHandleError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Leave applied", map[string]string{"id": "l1"})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.Equal(t, CodeSuccess, body.Code)
	assert.Equal(t, "Leave applied", body.Message)
}
