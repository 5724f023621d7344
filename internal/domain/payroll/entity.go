package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus enum. Transitions are one-directional: DRAFT -> CALCULATED ->
// APPROVED -> PAID. An APPROVED period never reopens.
type PeriodStatus string

const (
	PeriodDraft      PeriodStatus = "DRAFT"
	PeriodCalculated PeriodStatus = "CALCULATED"
	PeriodApproved   PeriodStatus = "APPROVED"
	PeriodPaid       PeriodStatus = "PAID"
)

// CanTransitionTo reports whether next is a legal successor of s.
func (s PeriodStatus) CanTransitionTo(next PeriodStatus) bool {
	switch s {
	case PeriodDraft:
		return next == PeriodCalculated
	case PeriodCalculated:
		return next == PeriodCalculated || next == PeriodApproved
	case PeriodApproved:
		return next == PeriodPaid
	default:
		return false
	}
}

// Recalculable reports whether the period's lines may still be replaced.
func (s PeriodStatus) Recalculable() bool {
	return s == PeriodDraft || s == PeriodCalculated
}

// Period is a fixed date range over which attendance is aggregated and pay
// computed. End date inclusive.
type Period struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PeriodTotals are the aggregated attendance facts for one employee over one
// period. Dates without a derived record count as absent.
type PeriodTotals struct {
	EmployeeID          string
	DaysPresent         int
	DaysAbsent          int
	DaysOnLeave         int
	RegularHours        float64
	OvertimeHours       float64
	LateCount           int
	EarlyDepartureCount int
}

// Line is the computed payroll result for one employee in one period. There
// is one line per (period, employee); lines in DRAFT or CALCULATED periods are
// replaced wholesale on recalculation, never patched.
type Line struct {
	ID         string
	PeriodID   string
	EmployeeID string

	Basic              decimal.Decimal
	HousingAllowance   decimal.Decimal
	TransportAllowance decimal.Decimal
	MealAllowance      decimal.Decimal
	OvertimePay        decimal.Decimal
	NightShiftPremium  decimal.Decimal
	Gross              decimal.Decimal

	SocialSecurityEmployee decimal.Decimal
	SocialSecurityEmployer decimal.Decimal // employer-side, tracked but not deducted
	IncomeTax              decimal.Decimal
	LoanRepayment          decimal.Decimal
	AbsenceDeduction       decimal.Decimal
	TotalDeductions        decimal.Decimal

	Net decimal.Decimal

	DaysPresent   int
	DaysAbsent    int
	DaysOnLeave   int
	OvertimeHours float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// Rates is the versionable deduction and allowance policy. All percentage
// values are fractions (0.20 = 20%). Loaded from configuration so rate
// changes never touch calculation code.
type Rates struct {
	HousingRate                decimal.Decimal
	TransportAllowance         decimal.Decimal
	MealAllowance              decimal.Decimal
	OvertimeMultiplier         decimal.Decimal
	NightShiftRate             decimal.Decimal
	SocialSecurityEmployeeRate decimal.Decimal
	SocialSecurityEmployerRate decimal.Decimal
	IncomeTaxRate              decimal.Decimal
	StandardMonthlyHours       decimal.Decimal
	AbsenceDivisorDays         decimal.Decimal
	DefaultBasicSalary         decimal.Decimal
}

// DefaultRates returns the statutory and contractual defaults.
func DefaultRates() Rates {
	return Rates{
		HousingRate:                decimal.NewFromFloat(0.20),
		TransportAllowance:         decimal.NewFromInt(150000),
		MealAllowance:              decimal.NewFromInt(100000),
		OvertimeMultiplier:         decimal.NewFromFloat(1.5),
		NightShiftRate:             decimal.NewFromFloat(0.15),
		SocialSecurityEmployeeRate: decimal.NewFromFloat(0.05),
		SocialSecurityEmployerRate: decimal.NewFromFloat(0.12),
		IncomeTaxRate:              decimal.NewFromFloat(0.03),
		StandardMonthlyHours:       decimal.NewFromInt(176),
		AbsenceDivisorDays:         decimal.NewFromInt(30),
		DefaultBasicSalary:         decimal.NewFromInt(1000000),
	}
}

// Warning is a recoverable data-integrity finding surfaced with the run
// result rather than aborting the batch.
type Warning struct {
	EmployeeID string
	Code       string
	Message    string
}

const (
	WarnMissingBasicSalary = "MISSING_BASIC_SALARY"
)

// Failure marks an employee whose line was omitted from the run pending
// manual correction.
type Failure struct {
	EmployeeID string
	Reason     string
}

// RunResult is the outcome of a period-wide calculation. Per-employee
// failures never abort the run for other employees.
type RunResult struct {
	PeriodID string
	Lines    []Line
	Warnings []Warning
	Failures []Failure
}
