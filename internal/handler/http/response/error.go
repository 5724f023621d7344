package response

import (
	"errors"
	"net/http"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/report"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/revenue"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/validator"
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
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee is already checked in")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Employee must check in first")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Employee is already checked out")
	case errors.Is(err, attendance.ErrScannerBusy):
		Conflict(w, "Scanner is busy processing another scan")
	case errors.Is(err, attendance.ErrUnknownEventKind):
		BadRequest(w, "Unknown clock event kind", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrProfileNotFound):
		NotFound(w, "Compensation profile not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodLocked):
		Conflict(w, "Payroll period is approved and can no longer change")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Payroll period cannot move to the requested status")
	case errors.Is(err, payroll.ErrPeriodNotCalculated):
		Conflict(w, "Payroll period has not been calculated yet")
	case errors.Is(err, payroll.ErrLineNotFound):
		NotFound(w, "Payroll line not found")
	case errors.Is(err, payroll.ErrPeriodOverlap):
		Conflict(w, "Payroll period overlaps an existing period")
	case errors.Is(err, payroll.ErrInvalidPeriodRange):
		BadRequest(w, "Period end date must not precede its start date", nil)

	// Revenue domain errors
	case errors.Is(err, revenue.ErrInvoiceLineNotFound):
		NotFound(w, "Invoice line not found")
	case errors.Is(err, revenue.ErrStakeholderNotFound):
		NotFound(w, "Stakeholder not found")
	case errors.Is(err, revenue.ErrShareNotFound):
		NotFound(w, "Invoice share not found")
	case errors.Is(err, revenue.ErrAlreadyAllocated):
		Conflict(w, "Shares are already allocated for this invoice line")
	case errors.Is(err, revenue.ErrNoTemplatesForService):
		BadRequest(w, "No share templates configured for this service", nil)
	case errors.Is(err, revenue.ErrInvalidPaymentAmount):
		BadRequest(w, "Amount paid must not exceed the share amount", nil)

	// Report domain errors
	case errors.Is(err, report.ErrPeriodNotApproved):
		Conflict(w, "Payroll period must be approved first")
	case errors.Is(err, report.ErrMissingBankDetails):
		Conflict(w, "One or more employees are missing bank details")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
