package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/leave"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	attendanceService "github.com/SanorSmith/Tibba-sub001/internal/service/attendance"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.Repository
	employeeRepo employee.Repository
	eventRepo    attendance.ClockEventRepository
	leaveRepo    leave.Repository
	deriver      *attendanceService.Deriver
	rates        payroll.Rates
	shiftRules   attendance.ShiftRules
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	employeeRepo employee.Repository,
	eventRepo attendance.ClockEventRepository,
	leaveRepo leave.Repository,
	deriver *attendanceService.Deriver,
	rates payroll.Rates,
	shiftRules attendance.ShiftRules,
) payroll.Service {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		leaveRepo:    leaveRepo,
		deriver:      deriver,
		rates:        rates,
		shiftRules:   shiftRules,
	}
}

// CreatePeriod implements payroll.Service.
func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	period := payroll.Period{
		ID:        uuid.NewString(),
		StartDate: start,
		EndDate:   end,
		Status:    payroll.PeriodDraft,
	}

	created, err := s.payrollRepo.CreatePeriod(ctx, period)
	if err != nil {
		return payroll.PeriodResponse{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return mapPeriodToResponse(created), nil
}

// GetPeriod implements payroll.Service.
func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return mapPeriodToResponse(period), nil
}

// ListPeriods implements payroll.Service.
func (s *PayrollServiceImpl) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}

	responses := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, mapPeriodToResponse(p))
	}
	return responses, nil
}

// Calculate implements payroll.Service. The run re-derives every employee's
// attendance from the event store, aggregates it and replaces the employee's
// line. It is a pure recomputation over an immutable snapshot: interrupting
// and restarting it from scratch yields the same lines. Failures for one
// employee never abort the run for the others; the failed employee's line is
// removed pending manual correction.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, periodID string) (payroll.RunResultResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.RunResultResponse{}, err
	}

	if !period.Status.Recalculable() {
		return payroll.RunResultResponse{}, payroll.ErrPeriodLocked
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.RunResultResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	result := payroll.RunResult{PeriodID: period.ID}

	for _, emp := range employees {
		line, warnings, err := s.computeEmployeeLine(ctx, period, emp)
		if err != nil {
			slog.Warn("payroll line omitted",
				"period_id", period.ID,
				"employee_id", emp.ID,
				"error", err)
			result.Failures = append(result.Failures, payroll.Failure{
				EmployeeID: emp.ID,
				Reason:     err.Error(),
			})
			if delErr := s.payrollRepo.DeleteLine(ctx, period.ID, emp.ID); delErr != nil && !errors.Is(delErr, payroll.ErrLineNotFound) {
				return payroll.RunResultResponse{}, fmt.Errorf("failed to remove stale line for employee %s: %w", emp.ID, delErr)
			}
			continue
		}

		stored, err := s.payrollRepo.ReplaceLine(ctx, line)
		if err != nil {
			return payroll.RunResultResponse{}, fmt.Errorf("failed to replace line for employee %s: %w", emp.ID, err)
		}

		result.Lines = append(result.Lines, stored)
		result.Warnings = append(result.Warnings, warnings...)
	}

	status := period.Status
	if status == payroll.PeriodDraft {
		if err := s.payrollRepo.UpdatePeriodStatus(ctx, period.ID, payroll.PeriodDraft, payroll.PeriodCalculated); err != nil {
			return payroll.RunResultResponse{}, fmt.Errorf("failed to mark period calculated: %w", err)
		}
		status = payroll.PeriodCalculated
	}

	return mapRunResultToResponse(result, status), nil
}

// GetPeriodTotals implements payroll.Service.
func (s *PayrollServiceImpl) GetPeriodTotals(ctx context.Context, employeeID, periodID string) (payroll.PeriodTotalsResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodTotalsResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.PeriodTotalsResponse{}, err
	}

	totals, err := s.aggregateEmployee(ctx, period, employeeID)
	if err != nil {
		return payroll.PeriodTotalsResponse{}, err
	}

	return payroll.PeriodTotalsResponse{
		EmployeeID:          totals.EmployeeID,
		PeriodID:            period.ID,
		DaysPresent:         totals.DaysPresent,
		DaysAbsent:          totals.DaysAbsent,
		DaysOnLeave:         totals.DaysOnLeave,
		RegularHours:        totals.RegularHours,
		OvertimeHours:       totals.OvertimeHours,
		LateCount:           totals.LateCount,
		EarlyDepartureCount: totals.EarlyDepartureCount,
	}, nil
}

// ListLines implements payroll.Service.
func (s *PayrollServiceImpl) ListLines(ctx context.Context, periodID string) ([]payroll.LineResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}

	lines, err := s.payrollRepo.ListLines(ctx, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}

	responses := make([]payroll.LineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, mapLineToResponse(line))
	}
	return responses, nil
}

// Approve implements payroll.Service.
func (s *PayrollServiceImpl) Approve(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	return s.transition(ctx, periodID, payroll.PeriodCalculated, payroll.PeriodApproved)
}

// Pay implements payroll.Service.
func (s *PayrollServiceImpl) Pay(ctx context.Context, periodID string) (payroll.PeriodResponse, error) {
	return s.transition(ctx, periodID, payroll.PeriodApproved, payroll.PeriodPaid)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, periodID string, from, to payroll.PeriodStatus) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	if period.Status != from || !period.Status.CanTransitionTo(to) {
		return payroll.PeriodResponse{}, payroll.ErrInvalidTransition
	}

	if err := s.payrollRepo.UpdatePeriodStatus(ctx, periodID, from, to); err != nil {
		return payroll.PeriodResponse{}, err
	}

	period.Status = to
	return mapPeriodToResponse(period), nil
}

func (s *PayrollServiceImpl) computeEmployeeLine(ctx context.Context, period payroll.Period, emp employee.Employee) (payroll.Line, []payroll.Warning, error) {
	totals, err := s.aggregateEmployee(ctx, period, emp.ID)
	if err != nil {
		return payroll.Line{}, nil, err
	}

	profile, err := s.employeeRepo.GetCompensationProfile(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, employee.ErrProfileNotFound) {
			// A missing profile is unlike a missing salary field: there is
			// nothing to compute from, so the employee fails, not defaults.
			return payroll.Line{}, nil, fmt.Errorf("no compensation profile for employee %s: %w", emp.ID, err)
		}
		return payroll.Line{}, nil, fmt.Errorf("failed to load compensation profile: %w", err)
	}

	line, warnings := ComputeLine(profile, totals, s.rates)
	line.ID = uuid.NewString()
	line.PeriodID = period.ID
	return line, warnings, nil
}

func (s *PayrollServiceImpl) aggregateEmployee(ctx context.Context, period payroll.Period, employeeID string) (payroll.PeriodTotals, error) {
	events, err := s.eventRepo.ListByEmployeeBetween(ctx, employeeID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PeriodTotals{}, fmt.Errorf("failed to load clock events: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedByEmployee(ctx, employeeID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PeriodTotals{}, fmt.Errorf("failed to load leave intervals: %w", err)
	}

	eventsByDate := make(map[string][]attendance.ClockEvent)
	for _, ev := range events {
		key := ev.Date.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}

	var records []attendance.DailyRecord
	for day := truncateToDay(period.StartDate); !day.After(period.EndDate); day = day.AddDate(0, 0, 1) {
		dayEvents := eventsByDate[day.Format("2006-01-02")]
		if len(dayEvents) == 0 && len(leaves) == 0 {
			// No facts for the day; the aggregator counts it as absent.
			continue
		}
		records = append(records, s.deriver.Derive(employeeID, day, dayEvents, leaves))
	}

	return AggregatePeriod(employeeID, period.StartDate, period.EndDate, records, s.shiftRules.StandardShiftHours), nil
}

func mapPeriodToResponse(p payroll.Period) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Status:    string(p.Status),
	}
}

func mapLineToResponse(line payroll.Line) payroll.LineResponse {
	return payroll.LineResponse{
		ID:                     line.ID,
		PeriodID:               line.PeriodID,
		EmployeeID:             line.EmployeeID,
		EmployeeName:           line.EmployeeName,
		Basic:                  line.Basic,
		HousingAllowance:       line.HousingAllowance,
		TransportAllowance:     line.TransportAllowance,
		MealAllowance:          line.MealAllowance,
		OvertimePay:            line.OvertimePay,
		NightShiftPremium:      line.NightShiftPremium,
		Gross:                  line.Gross,
		SocialSecurityEmployee: line.SocialSecurityEmployee,
		SocialSecurityEmployer: line.SocialSecurityEmployer,
		IncomeTax:              line.IncomeTax,
		LoanRepayment:          line.LoanRepayment,
		AbsenceDeduction:       line.AbsenceDeduction,
		TotalDeductions:        line.TotalDeductions,
		Net:                    line.Net,
		DaysPresent:            line.DaysPresent,
		DaysAbsent:             line.DaysAbsent,
		DaysOnLeave:            line.DaysOnLeave,
		OvertimeHours:          line.OvertimeHours,
	}
}

func mapRunResultToResponse(result payroll.RunResult, status payroll.PeriodStatus) payroll.RunResultResponse {
	lines := make([]payroll.LineResponse, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, mapLineToResponse(line))
	}

	warnings := make([]payroll.WarningResponse, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, payroll.WarningResponse{
			EmployeeID: w.EmployeeID,
			Code:       w.Code,
			Message:    w.Message,
		})
	}

	failures := make([]payroll.FailureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, payroll.FailureResponse{
			EmployeeID: f.EmployeeID,
			Reason:     f.Reason,
		})
	}

	return payroll.RunResultResponse{
		PeriodID: result.PeriodID,
		Status:   string(status),
		Lines:    lines,
		Warnings: warnings,
		Failures: failures,
	}
}
