package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrEmployeeRequired):
		Forbidden(w, "This action requires an employee account")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrClockInNotAvailable):
		BadRequest(w, capitalize(err.Error()), nil)
	case errors.Is(err, attendance.ErrNormalSessionExists),
		errors.Is(err, attendance.ErrOvertimeSessionExists),
		errors.Is(err, attendance.ErrNormalSessionStillOpen),
		errors.Is(err, attendance.ErrNoOpenSession),
		errors.Is(err, attendance.ErrSessionLocked):
		BadRequest(w, capitalize(err.Error()), nil)
	case errors.Is(err, attendance.ErrSessionAlreadyRecorded):
		Conflict(w, "Attendance session already recorded")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrFinalizeFailed):
		slog.Error("Attendance finalize failed", "error", err)
		InternalServerError(w, "Failed to finalize attendance session")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoOpenPeriod),
		errors.Is(err, payroll.ErrPeriodNotLocked):
		BadRequest(w, capitalize(err.Error()), nil)
	case errors.Is(err, payroll.ErrPeriodOverlap),
		errors.Is(err, payroll.ErrPeriodAlreadyLocked):
		Conflict(w, capitalize(err.Error()))
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")

	// Store unavailable or timed out; callers may retry
	case database.IsUnavailable(err):
		slog.Warn("Store unavailable", "error", err)
		ServiceUnavailable(w, "Service temporarily unavailable, please retry")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
