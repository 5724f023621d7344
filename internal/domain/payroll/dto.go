package payroll

import (
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePeriodRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type PeriodTotalsResponse struct {
	EmployeeID          string  `json:"employee_id"`
	PeriodID            string  `json:"period_id"`
	DaysPresent         int     `json:"days_present"`
	DaysAbsent          int     `json:"days_absent"`
	DaysOnLeave         int     `json:"days_on_leave"`
	RegularHours        float64 `json:"regular_hours"`
	OvertimeHours       float64 `json:"overtime_hours"`
	LateCount           int     `json:"late_count"`
	EarlyDepartureCount int     `json:"early_departure_count"`
}

type LineResponse struct {
	ID         string `json:"id"`
	PeriodID   string `json:"period_id"`
	EmployeeID string `json:"employee_id"`

	EmployeeName *string `json:"employee_name,omitempty"`

	Basic              decimal.Decimal `json:"basic"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	NightShiftPremium  decimal.Decimal `json:"night_shift_premium"`
	Gross              decimal.Decimal `json:"gross"`

	SocialSecurityEmployee decimal.Decimal `json:"social_security_employee"`
	SocialSecurityEmployer decimal.Decimal `json:"social_security_employer"`
	IncomeTax              decimal.Decimal `json:"income_tax"`
	LoanRepayment          decimal.Decimal `json:"loan_repayment"`
	AbsenceDeduction       decimal.Decimal `json:"absence_deduction"`
	TotalDeductions        decimal.Decimal `json:"total_deductions"`

	Net decimal.Decimal `json:"net"`

	DaysPresent   int     `json:"days_present"`
	DaysAbsent    int     `json:"days_absent"`
	DaysOnLeave   int     `json:"days_on_leave"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type WarningResponse struct {
	EmployeeID string `json:"employee_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

type FailureResponse struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type RunResultResponse struct {
	PeriodID string            `json:"period_id"`
	Status   string            `json:"status"`
	Lines    []LineResponse    `json:"lines"`
	Warnings []WarningResponse `json:"warnings,omitempty"`
	Failures []FailureResponse `json:"failures,omitempty"`
}
