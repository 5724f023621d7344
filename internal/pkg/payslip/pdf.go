package payslip

import (
	"bytes"
	"fmt"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Render produces a single-page payslip PDF from an itemized payslip record.
func Render(slip report.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Payslip", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s", slip.PeriodStart, slip.PeriodEnd), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Department: %s", slip.Department), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Earnings")
	row(pdf, "Basic salary", slip.Basic)
	row(pdf, "Housing allowance", slip.HousingAllowance)
	row(pdf, "Transport allowance", slip.TransportAllowance)
	row(pdf, "Meal allowance", slip.MealAllowance)
	row(pdf, "Overtime pay", slip.OvertimePay)
	if !slip.NightShiftPremium.IsZero() {
		row(pdf, "Night shift premium", slip.NightShiftPremium)
	}
	totalRow(pdf, "Gross", slip.Gross)
	pdf.Ln(3)

	section(pdf, "Deductions")
	row(pdf, "Social security (employee)", slip.SocialSecurityEmployee)
	row(pdf, "Income tax", slip.IncomeTax)
	if !slip.LoanRepayment.IsZero() {
		row(pdf, "Loan repayment", slip.LoanRepayment)
	}
	if !slip.AbsenceDeduction.IsZero() {
		row(pdf, "Absence deduction", slip.AbsenceDeduction)
	}
	totalRow(pdf, "Total deductions", slip.TotalDeductions)
	pdf.Ln(3)

	totalRow(pdf, "Net pay", slip.Net)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Days present: %d   Days absent: %d   Days on leave: %d   Overtime hours: %.2f",
		slip.DaysPresent, slip.DaysAbsent, slip.DaysOnLeave, slip.OvertimeHours), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func row(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(120, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, amount.StringFixed(0), "", 1, "R", false, 0, "")
}

func totalRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 6, label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, amount.StringFixed(0), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}
