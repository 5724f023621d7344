package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/report"
)

type fakePayrollRepo struct {
	periods map[string]payroll.Period
	lines   map[string]payroll.Line // key: periodID + "/" + employeeID
}

func (f *fakePayrollRepo) CreatePeriod(ctx context.Context, period payroll.Period) (payroll.Period, error) {
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakePayrollRepo) GetPeriodByID(ctx context.Context, id string) (payroll.Period, error) {
	p, ok := f.periods[id]
	if !ok {
		return payroll.Period{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) ListPeriods(ctx context.Context) ([]payroll.Period, error) { return nil, nil }

func (f *fakePayrollRepo) UpdatePeriodStatus(ctx context.Context, id string, from, to payroll.PeriodStatus) error {
	return nil
}

func (f *fakePayrollRepo) ReplaceLine(ctx context.Context, line payroll.Line) (payroll.Line, error) {
	f.lines[line.PeriodID+"/"+line.EmployeeID] = line
	return line, nil
}

func (f *fakePayrollRepo) DeleteLine(ctx context.Context, periodID, employeeID string) error {
	return nil
}

func (f *fakePayrollRepo) GetLine(ctx context.Context, periodID, employeeID string) (payroll.Line, error) {
	line, ok := f.lines[periodID+"/"+employeeID]
	if !ok {
		return payroll.Line{}, payroll.ErrLineNotFound
	}
	return line, nil
}

func (f *fakePayrollRepo) ListLines(ctx context.Context, periodID string) ([]payroll.Line, error) {
	var out []payroll.Line
	for _, line := range f.lines {
		if line.PeriodID == periodID {
			out = append(out, line)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	profiles  map[string]employee.CompensationProfile
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetCompensationProfile(ctx context.Context, employeeID string) (employee.CompensationProfile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return employee.CompensationProfile{}, employee.ErrProfileNotFound
	}
	return p, nil
}

func newReportFixture(status payroll.PeriodStatus) (*fakePayrollRepo, *fakeEmployeeRepo, report.Service) {
	payrollRepo := &fakePayrollRepo{
		periods: map[string]payroll.Period{
			"period-1": {
				ID:        "period-1",
				StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
				Status:    status,
			},
		},
		lines: map[string]payroll.Line{
			"period-1/emp-1": {
				ID:                     "line-1",
				PeriodID:               "period-1",
				EmployeeID:             "emp-1",
				Basic:                  decimal.NewFromInt(2_000_000),
				HousingAllowance:       decimal.NewFromInt(400_000),
				TransportAllowance:     decimal.NewFromInt(150_000),
				MealAllowance:          decimal.NewFromInt(100_000),
				OvertimePay:            decimal.NewFromInt(68_182),
				Gross:                  decimal.NewFromInt(2_718_182),
				SocialSecurityEmployee: decimal.NewFromInt(100_000),
				IncomeTax:              decimal.NewFromInt(81_545),
				TotalDeductions:        decimal.NewFromInt(181_545),
				Net:                    decimal.NewFromInt(2_536_637),
				DaysPresent:            22,
			},
		},
	}
	employeeRepo := &fakeEmployeeRepo{
		employees: map[string]employee.Employee{
			"emp-1": {ID: "emp-1", Name: "Sara Hassan", Department: "Radiology", IsActive: true},
		},
		profiles: map[string]employee.CompensationProfile{
			"emp-1": {
				EmployeeID:    "emp-1",
				BankName:      "First National",
				AccountNumber: "1234567890",
			},
		},
	}
	return payrollRepo, employeeRepo, NewReportService(payrollRepo, employeeRepo)
}

func TestReportService_BankTransferRows(t *testing.T) {
	ctx := context.Background()
	_, _, service := newReportFixture(payroll.PeriodApproved)

	rows, err := service.BankTransferRows(ctx, "period-1")
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Sara Hassan", rows[0].EmployeeName)
	assert.Equal(t, "First National", rows[0].BankName)
	assert.Equal(t, "1234567890", rows[0].AccountNumber)
	assert.True(t, decimal.NewFromInt(2_536_637).Equal(rows[0].NetAmount))
}

func TestReportService_BankTransferRows_RejectsUnapproved(t *testing.T) {
	ctx := context.Background()

	for _, status := range []payroll.PeriodStatus{payroll.PeriodDraft, payroll.PeriodCalculated} {
		_, _, service := newReportFixture(status)
		_, err := service.BankTransferRows(ctx, "period-1")
		assert.ErrorIs(t, err, report.ErrPeriodNotApproved, "status %s", status)
	}
}

func TestReportService_BankTransferRows_PaidPeriodAllowed(t *testing.T) {
	ctx := context.Background()
	_, _, service := newReportFixture(payroll.PeriodPaid)

	rows, err := service.BankTransferRows(ctx, "period-1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReportService_BankTransferRows_MissingBankDetails(t *testing.T) {
	ctx := context.Background()
	_, employeeRepo, service := newReportFixture(payroll.PeriodApproved)
	profile := employeeRepo.profiles["emp-1"]
	profile.AccountNumber = ""
	employeeRepo.profiles["emp-1"] = profile

	_, err := service.BankTransferRows(ctx, "period-1")
	assert.ErrorIs(t, err, report.ErrMissingBankDetails)
}

func TestReportService_BankTransferRows_MalformedAccountNumber(t *testing.T) {
	ctx := context.Background()
	_, employeeRepo, service := newReportFixture(payroll.PeriodApproved)
	profile := employeeRepo.profiles["emp-1"]
	profile.AccountNumber = "12-34-56"
	employeeRepo.profiles["emp-1"] = profile

	_, err := service.BankTransferRows(ctx, "period-1")
	assert.ErrorIs(t, err, report.ErrMissingBankDetails)
}

func TestReportService_BankTransferCSV(t *testing.T) {
	ctx := context.Background()
	_, _, service := newReportFixture(payroll.PeriodApproved)

	data, err := service.BankTransferCSV(ctx, "period-1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "employee_id,employee_name,bank_name,account_number,net_amount", lines[0])
	assert.Equal(t, "emp-1,Sara Hassan,First National,1234567890,2536637", lines[1])
}

func TestReportService_Payslip(t *testing.T) {
	ctx := context.Background()
	_, _, service := newReportFixture(payroll.PeriodApproved)

	slip, err := service.Payslip(ctx, "period-1", "emp-1")
	require.NoError(t, err)

	assert.Equal(t, "Sara Hassan", slip.EmployeeName)
	assert.Equal(t, "Radiology", slip.Department)
	assert.Equal(t, "2026-03-01", slip.PeriodStart)
	assert.Equal(t, "2026-03-31", slip.PeriodEnd)
	assert.True(t, decimal.NewFromInt(2_536_637).Equal(slip.Net))
	assert.Equal(t, 22, slip.DaysPresent)
}

func TestReportService_Payslip_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	_, _, service := newReportFixture(payroll.PeriodApproved)

	_, err := service.Payslip(ctx, "period-1", "emp-unknown")
	assert.ErrorIs(t, err, payroll.ErrLineNotFound)
}

func TestReportService_PayslipPDF(t *testing.T) {
	ctx := context.Background()
	_, _, service := newReportFixture(payroll.PeriodApproved)

	data, err := service.PayslipPDF(ctx, "period-1", "emp-1")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
