package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/role"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

var (
	badRequest = []error{
		leave.ErrInsufficientBalance,
		leave.ErrOverlappingLeave,
		leave.ErrInvalidDateRange,
		leave.ErrStartDateInPast,
		leave.ErrNoWorkingDays,
		leave.ErrInvalidTransition,
		leave.ErrNotEditable,
		leave.ErrTotalBelowUsed,
		leave.ErrEmployeeRequired,
		attendance.ErrAlreadyClockedOut,
		attendance.ErrOnLeave,
		attendance.ErrUnknownEmployees,
		attendance.ErrCheckOutBeforeIn,
		attendance.ErrEmployeeRequired,
		payroll.ErrNoComponents,
		employee.ErrManagerNotFound,
		employee.ErrInvalidManager,
		employee.ErrDepartmentNotFound,
		employee.ErrDesignationNotFound,
		employee.ErrSelfDeactivation,
		user.ErrCustomRoleNotFound,
		role.ErrPermissionNotFound,
		role.ErrSystemRole,
		notification.ErrInvalidType,
		report.ErrInvalidPeriod,
	}
	notFound = []error{
		user.ErrUserNotFound,
		employee.ErrEmployeeNotFound,
		leave.ErrLeaveRequestNotFound,
		leave.ErrLeaveBalanceNotFound,
		attendance.ErrAttendanceNotFound,
		payroll.ErrComponentTypeNotFound,
		payroll.ErrPayrollRecordNotFound,
		payroll.ErrEmployeeHasNoSalary,
		performance.ErrAppraisalNotFound,
		role.ErrRoleNotFound,
		department.ErrDepartmentNotFound,
		designation.ErrDesignationNotFound,
		notification.ErrNotificationNotFound,
	}
	unauthorized = []error{
		auth.ErrInvalidCredentials,
		auth.ErrInvalidToken,
		user.ErrSessionMissing,
	}
	forbidden = []error{
		auth.ErrAccountInactive,
		user.ErrInsufficientPermissions,
		leave.ErrForbidden,
		employee.ErrUnauthorized,
		performance.ErrAccessDenied,
	}
	conflict = []error{
		user.ErrUserEmailExists,
		employee.ErrEmployeeCodeExists,
		role.ErrRoleNameExists,
		department.ErrDepartmentNameExists,
		designation.ErrDesignationNameExists,
		role.ErrRoleInUse,
		payroll.ErrPayrollRecordAlreadyExists,
		payroll.ErrComponentTypeInUse,
		leave.ErrStatusChanged,
	}
)

func match(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if target, ok := match(err, badRequest); ok {
		BadRequest(w, target.Error(), nil)
		return
	}
	if target, ok := match(err, notFound); ok {
		NotFound(w, target.Error())
		return
	}
	if target, ok := match(err, unauthorized); ok {
		Unauthorized(w, target.Error())
		return
	}
	if target, ok := match(err, forbidden); ok {
		Forbidden(w, target.Error())
		return
	}
	if target, ok := match(err, conflict); ok {
		Conflict(w, target.Error())
		return
	}

	slog.Error("unhandled error", slog.Any("error", err))
	InternalServerError(w, "An unexpected error occurred")
}
