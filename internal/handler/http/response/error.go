package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrEmployeeRequired):
		Forbidden(w, "Token is not bound to an employee")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Request format errors
	case errors.Is(err, attendance.ErrInvalidMonth),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, report.ErrDateRangeTooLarge):
		BadRequest(w, err.Error(), nil)

	// Punch errors
	case errors.Is(err, punch.ErrFlowComplete):
		ConflictWithCode(w, CodeFlowComplete, "All punches for this project and day have already been recorded")
	case errors.Is(err, punch.ErrUnexpectedKind):
		ConflictWithCode(w, CodeUnexpectedKind, err.Error())
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrProjectInactive):
		Conflict(w, "Project is not active")
	case errors.Is(err, tracking.ErrUnknownMode):
		BadRequest(w, "Unknown tracking mode", nil)

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Justification errors
	case errors.Is(err, justification.ErrJustificationNotFound):
		NotFound(w, "Justification not found")
	case errors.Is(err, justification.ErrAttachmentNotFound):
		NotFound(w, "Justification has no attachment")
	case errors.Is(err, justification.ErrJustificationExists):
		Conflict(w, "A justification already exists for this employee and date")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
