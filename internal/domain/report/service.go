package report

import "context"

// Service builds downstream export artifacts from approved payroll data.
type Service interface {
	BankTransferRows(ctx context.Context, periodID string) ([]BankTransferRow, error)
	BankTransferCSV(ctx context.Context, periodID string) ([]byte, error)
	Payslip(ctx context.Context, periodID, employeeID string) (Payslip, error)
	PayslipPDF(ctx context.Context, periodID, employeeID string) ([]byte, error)
}
