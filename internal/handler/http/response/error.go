package response

import (
	"errors"
	"net/http"

	"github.com/agencydesk/crm-backend-go/internal/domain/assignment"
	"github.com/agencydesk/crm-backend-go/internal/domain/auth"
	"github.com/agencydesk/crm-backend-go/internal/domain/bonus"
	"github.com/agencydesk/crm-backend-go/internal/domain/creator"
	"github.com/agencydesk/crm-backend-go/internal/domain/payroll"
	"github.com/agencydesk/crm-backend-go/internal/domain/shift"
	"github.com/agencydesk/crm-backend-go/internal/domain/user"
	"github.com/agencydesk/crm-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrApproverRoleRequired),
		errors.Is(err, user.ErrNotTeamSupervisor),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrChatterRoleRequired):
		BadRequest(w, err.Error(), nil)

	// Creator and assignment errors
	case errors.Is(err, creator.ErrCreatorNotFound):
		NotFound(w, "Creator not found")
	case errors.Is(err, creator.ErrCreatorExists):
		Conflict(w, "Creator already exists for this platform and username")
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, assignment.ErrAssignmentHistorical):
		Conflict(w, "Assignment has already been unassigned")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrNoOpenShift):
		BadRequest(w, "No open shift to clock out of", nil)
	case errors.Is(err, shift.ErrShiftAlreadyApproved):
		Conflict(w, "Shift already approved")
	case errors.Is(err, shift.ErrShiftStillOpen):
		BadRequest(w, "Shift is still open", nil)

	// Bonus rule errors
	case errors.Is(err, bonus.ErrRuleNotFound):
		NotFound(w, "Bonus rule not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrPayPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payroll.ErrInvalidRange):
		BadRequest(w, "Invalid pay period range", nil)
	case errors.Is(err, payroll.ErrPayrollNotDraft):
		Conflict(w, "Payroll is not in draft status")
	case errors.Is(err, payroll.ErrPayrollNotApproved):
		Conflict(w, "Payroll is not approved")
	case errors.Is(err, payroll.ErrPayrollPaid):
		Conflict(w, "Payroll has already been paid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
