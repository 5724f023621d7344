package report

import "errors"

var (
	// ErrPeriodNotApproved guards every export: payslips and bank files are
	// generated only after the owning period reaches APPROVED.
	ErrPeriodNotApproved  = errors.New("payroll period must be approved before export")
	ErrMissingBankDetails = errors.New("employee has no bank details on file")
)
