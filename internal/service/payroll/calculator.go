package payroll

import (
	"fmt"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ComputeLine is the single canonical payroll computation. Every screen and
// export that shows pay figures depends on this function, so the formulas
// cannot drift between call sites.
//
// Components are computed in a fixed order and every intermediate monetary
// value is rounded to the nearest whole currency unit as soon as it is
// produced; rounding is never deferred to the end. Net is derived only after
// every deduction component is final.
func ComputeLine(profile employee.CompensationProfile, totals payroll.PeriodTotals, rates payroll.Rates) (payroll.Line, []payroll.Warning) {
	var warnings []payroll.Warning

	basic := rates.DefaultBasicSalary
	if profile.BasicSalary != nil && !profile.BasicSalary.IsZero() {
		basic = *profile.BasicSalary
	} else {
		// A malformed profile must not block the whole period; fall back to
		// the configured default and surface the fallback.
		warnings = append(warnings, payroll.Warning{
			EmployeeID: profile.EmployeeID,
			Code:       payroll.WarnMissingBasicSalary,
			Message: fmt.Sprintf("employee %s has no basic salary, using default %s",
				profile.EmployeeID, rates.DefaultBasicSalary.String()),
		})
	}

	housing := basic.Mul(rates.HousingRate).Round(0)
	transport := rates.TransportAllowance.Round(0)
	meal := rates.MealAllowance.Round(0)

	overtimeHours := decimal.NewFromFloat(totals.OvertimeHours)
	overtimePay := basic.Div(rates.StandardMonthlyHours).
		Mul(rates.OvertimeMultiplier).
		Mul(overtimeHours).
		Round(0)

	nightPremium := decimal.Zero
	if profile.ShiftType == employee.ShiftNight {
		nightPremium = basic.Mul(rates.NightShiftRate).Round(0)
	}

	gross := basic.Add(housing).Add(transport).Add(meal).Add(overtimePay).Add(nightPremium)

	ssEmployee := basic.Mul(rates.SocialSecurityEmployeeRate).Round(0)
	ssEmployer := basic.Mul(rates.SocialSecurityEmployerRate).Round(0)
	incomeTax := gross.Mul(rates.IncomeTaxRate).Round(0)

	loanRepayment := decimal.Zero
	if profile.Loan != nil {
		loanRepayment = profile.Loan.Installment.Round(0)
	}

	absenceDeduction := basic.Div(rates.AbsenceDivisorDays).
		Mul(decimal.NewFromInt(int64(totals.DaysAbsent))).
		Round(0)

	totalDeductions := ssEmployee.Add(incomeTax).Add(loanRepayment).Add(absenceDeduction)
	net := gross.Sub(totalDeductions)

	return payroll.Line{
		EmployeeID:             profile.EmployeeID,
		Basic:                  basic,
		HousingAllowance:       housing,
		TransportAllowance:     transport,
		MealAllowance:          meal,
		OvertimePay:            overtimePay,
		NightShiftPremium:      nightPremium,
		Gross:                  gross,
		SocialSecurityEmployee: ssEmployee,
		SocialSecurityEmployer: ssEmployer,
		IncomeTax:              incomeTax,
		LoanRepayment:          loanRepayment,
		AbsenceDeduction:       absenceDeduction,
		TotalDeductions:        totalDeductions,
		Net:                    net,
		DaysPresent:            totals.DaysPresent,
		DaysAbsent:             totals.DaysAbsent,
		DaysOnLeave:            totals.DaysOnLeave,
		OvertimeHours:          totals.OvertimeHours,
	}, warnings
}
