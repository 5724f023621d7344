package payroll

import "errors"

var (
	ErrPeriodNotFound        = errors.New("payroll period not found")
	ErrPeriodLocked          = errors.New("payroll period is approved or paid and cannot be recalculated")
	ErrInvalidTransition     = errors.New("invalid payroll period status transition")
	ErrPeriodNotCalculated   = errors.New("payroll period has not been calculated yet")
	ErrLineNotFound          = errors.New("payroll line not found")
	ErrPeriodOverlap         = errors.New("payroll period overlaps an existing period")
	ErrInvalidPeriodRange    = errors.New("period end date must not be before start date")
)
