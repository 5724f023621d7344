package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/report"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/payslip"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/validator"
)

type ReportServiceImpl struct {
	payrollRepo  payroll.Repository
	employeeRepo employee.Repository
}

func NewReportService(payrollRepo payroll.Repository, employeeRepo employee.Repository) report.Service {
	return &ReportServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
	}
}

// BankTransferRows implements report.Service. Exports read PayrollLine data
// only once the owning period is APPROVED (or already PAID).
func (s *ReportServiceImpl) BankTransferRows(ctx context.Context, periodID string) ([]report.BankTransferRow, error) {
	period, err := s.approvedPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	lines, err := s.payrollRepo.ListLines(ctx, period.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}

	rows := make([]report.BankTransferRow, 0, len(lines))
	for _, line := range lines {
		emp, err := s.employeeRepo.GetByID(ctx, line.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up employee %s: %w", line.EmployeeID, err)
		}
		profile, err := s.employeeRepo.GetCompensationProfile(ctx, line.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load compensation profile for %s: %w", line.EmployeeID, err)
		}
		// A bank file with a blank or malformed account number would bounce
		// at the bank, so it is rejected here instead.
		if validator.IsEmpty(profile.BankName) || !validator.IsNumeric(profile.AccountNumber) {
			return nil, fmt.Errorf("employee %s: %w", line.EmployeeID, report.ErrMissingBankDetails)
		}

		rows = append(rows, report.BankTransferRow{
			EmployeeID:    line.EmployeeID,
			EmployeeName:  emp.Name,
			BankName:      profile.BankName,
			AccountNumber: profile.AccountNumber,
			NetAmount:     line.Net,
		})
	}

	return rows, nil
}

// BankTransferCSV implements report.Service.
func (s *ReportServiceImpl) BankTransferCSV(ctx context.Context, periodID string) ([]byte, error) {
	rows, err := s.BankTransferRows(ctx, periodID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"employee_id", "employee_name", "bank_name", "account_number", "net_amount"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.EmployeeID, row.EmployeeName, row.BankName, row.AccountNumber, row.NetAmount.StringFixed(0)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Payslip implements report.Service.
func (s *ReportServiceImpl) Payslip(ctx context.Context, periodID, employeeID string) (report.Payslip, error) {
	period, err := s.approvedPeriod(ctx, periodID)
	if err != nil {
		return report.Payslip{}, err
	}

	line, err := s.payrollRepo.GetLine(ctx, period.ID, employeeID)
	if err != nil {
		return report.Payslip{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.Payslip{}, err
	}

	return report.Payslip{
		PeriodID:               period.ID,
		PeriodStart:            period.StartDate.Format("2006-01-02"),
		PeriodEnd:              period.EndDate.Format("2006-01-02"),
		EmployeeID:             emp.ID,
		EmployeeName:           emp.Name,
		Department:             emp.Department,
		Basic:                  line.Basic,
		HousingAllowance:       line.HousingAllowance,
		TransportAllowance:     line.TransportAllowance,
		MealAllowance:          line.MealAllowance,
		OvertimePay:            line.OvertimePay,
		NightShiftPremium:      line.NightShiftPremium,
		Gross:                  line.Gross,
		SocialSecurityEmployee: line.SocialSecurityEmployee,
		IncomeTax:              line.IncomeTax,
		LoanRepayment:          line.LoanRepayment,
		AbsenceDeduction:       line.AbsenceDeduction,
		TotalDeductions:        line.TotalDeductions,
		Net:                    line.Net,
		DaysPresent:            line.DaysPresent,
		DaysAbsent:             line.DaysAbsent,
		DaysOnLeave:            line.DaysOnLeave,
		OvertimeHours:          line.OvertimeHours,
	}, nil
}

// PayslipPDF implements report.Service.
func (s *ReportServiceImpl) PayslipPDF(ctx context.Context, periodID, employeeID string) ([]byte, error) {
	slip, err := s.Payslip(ctx, periodID, employeeID)
	if err != nil {
		return nil, err
	}
	return payslip.Render(slip)
}

func (s *ReportServiceImpl) approvedPeriod(ctx context.Context, periodID string) (payroll.Period, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.Period{}, err
	}

	if period.Status != payroll.PeriodApproved && period.Status != payroll.PeriodPaid {
		return payroll.Period{}, report.ErrPeriodNotApproved
	}
	return period, nil
}
