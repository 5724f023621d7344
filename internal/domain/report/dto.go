package report

import (
	"github.com/shopspring/decimal"
)

// BankTransferRow is one line of the bank-transfer file: the net amount to
// wire to an employee's account for an approved period.
type BankTransferRow struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	BankName      string          `json:"bank_name"`
	AccountNumber string          `json:"account_number"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

// Payslip itemizes every component of one employee's pay for one period.
type Payslip struct {
	PeriodID     string `json:"period_id"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`

	Basic              decimal.Decimal `json:"basic"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	NightShiftPremium  decimal.Decimal `json:"night_shift_premium"`
	Gross              decimal.Decimal `json:"gross"`

	SocialSecurityEmployee decimal.Decimal `json:"social_security_employee"`
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
