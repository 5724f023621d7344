package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/leave"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	attendanceService "github.com/SanorSmith/Tibba-sub001/internal/service/attendance"
)

type fakePayrollRepo struct {
	periods map[string]payroll.Period
	lines   map[string]payroll.Line // key: periodID + "/" + employeeID
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		periods: make(map[string]payroll.Period),
		lines:   make(map[string]payroll.Line),
	}
}

func lineKey(periodID, employeeID string) string { return periodID + "/" + employeeID }

func (f *fakePayrollRepo) CreatePeriod(ctx context.Context, period payroll.Period) (payroll.Period, error) {
	for _, p := range f.periods {
		if !period.StartDate.After(p.EndDate) && !period.EndDate.Before(p.StartDate) {
			return payroll.Period{}, payroll.ErrPeriodOverlap
		}
	}
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

func (f *fakePayrollRepo) ListPeriods(ctx context.Context) ([]payroll.Period, error) {
	var out []payroll.Period
	for _, p := range f.periods {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdatePeriodStatus(ctx context.Context, id string, from, to payroll.PeriodStatus) error {
	p, ok := f.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	if p.Status != from {
		return payroll.ErrInvalidTransition
	}
	p.Status = to
	f.periods[id] = p
	return nil
}

func (f *fakePayrollRepo) ReplaceLine(ctx context.Context, line payroll.Line) (payroll.Line, error) {
	f.lines[lineKey(line.PeriodID, line.EmployeeID)] = line
	return line, nil
}

func (f *fakePayrollRepo) DeleteLine(ctx context.Context, periodID, employeeID string) error {
	key := lineKey(periodID, employeeID)
	if _, ok := f.lines[key]; !ok {
		return payroll.ErrLineNotFound
	}
	delete(f.lines, key)
	return nil
}

func (f *fakePayrollRepo) GetLine(ctx context.Context, periodID, employeeID string) (payroll.Line, error) {
	line, ok := f.lines[lineKey(periodID, employeeID)]
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

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		employees: make(map[string]employee.Employee),
		profiles:  make(map[string]employee.CompensationProfile),
	}
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetCompensationProfile(ctx context.Context, employeeID string) (employee.CompensationProfile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return employee.CompensationProfile{}, employee.ErrProfileNotFound
	}
	return p, nil
}

type fakeClockEvents struct {
	events []attendance.ClockEvent
}

func (f *fakeClockEvents) Append(ctx context.Context, event attendance.ClockEvent) (attendance.ClockEvent, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeClockEvents) LatestKind(ctx context.Context, employeeID string, date time.Time) (attendance.EventKind, bool, error) {
	var (
		kind  attendance.EventKind
		found bool
	)
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.Date.Equal(date) {
			kind, found = ev.Kind, true
		}
	}
	return kind, found, nil
}

func (f *fakeClockEvents) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.ClockEvent, error) {
	var out []attendance.ClockEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.Date.Equal(date) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeClockEvents) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.ClockEvent, error) {
	var out []attendance.ClockEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Date.Before(start) && !ev.Date.After(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeClockEvents) CountByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (int, error) {
	events, _ := f.ListByEmployeeAndDate(ctx, employeeID, date)
	return len(events), nil
}

type fakeLeaveRepo struct {
	intervals []leave.Interval
}

func (f *fakeLeaveRepo) ListApprovedByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Interval, error) {
	var out []leave.Interval
	for _, iv := range f.intervals {
		if iv.EmployeeID == employeeID && iv.Status == leave.StatusApproved &&
			!iv.StartDate.After(end) && !iv.EndDate.Before(start) {
			out = append(out, iv)
		}
	}
	return out, nil
}

type payrollFixture struct {
	repo      *fakePayrollRepo
	employees *fakeEmployeeRepo
	events    *fakeClockEvents
	leaves    *fakeLeaveRepo
	service   payroll.Service
}

func newPayrollFixture() *payrollFixture {
	f := &payrollFixture{
		repo:      newFakePayrollRepo(),
		employees: newFakeEmployeeRepo(),
		events:    &fakeClockEvents{},
		leaves:    &fakeLeaveRepo{},
	}
	rules := attendance.DefaultShiftRules()
	f.service = NewPayrollService(
		f.repo,
		f.employees,
		f.events,
		f.leaves,
		attendanceService.NewDeriver(rules),
		payroll.DefaultRates(),
		rules,
	)
	return f
}

func (f *payrollFixture) addEmployee(id string, basicSalary int64) {
	f.employees.employees[id] = employee.Employee{ID: id, Name: "Employee " + id, IsActive: true}
	salary := decimal.NewFromInt(basicSalary)
	f.employees.profiles[id] = employee.CompensationProfile{
		EmployeeID:  id,
		BasicSalary: &salary,
		ShiftType:   employee.ShiftDay,
	}
}

func (f *payrollFixture) addPeriod(id string, status payroll.PeriodStatus) payroll.Period {
	p := payroll.Period{
		ID:        id,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
	f.repo.periods[id] = p
	return p
}

func (f *payrollFixture) addWorkDay(employeeID string, d, inHour, outHour int) {
	date := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	f.events.events = append(f.events.events,
		attendance.ClockEvent{
			EmployeeID: employeeID, Date: date,
			Time: time.Date(2026, 3, d, inHour, 0, 0, 0, time.UTC),
			Kind: attendance.EventCheckIn,
		},
		attendance.ClockEvent{
			EmployeeID: employeeID, Date: date,
			Time: time.Date(2026, 3, d, outHour, 0, 0, 0, time.UTC),
			Kind: attendance.EventCheckOut,
		},
	)
}

func TestPayrollService_Calculate_MarksPeriodCalculated(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodDraft)
	f.addEmployee("emp-1", 2_000_000)
	for d := 1; d <= 5; d++ {
		f.addWorkDay("emp-1", d, 8, 16)
	}

	result, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)

	assert.Equal(t, string(payroll.PeriodCalculated), result.Status)
	require.Len(t, result.Lines, 1)
	assert.Empty(t, result.Failures)
	assert.Equal(t, 5, result.Lines[0].DaysPresent)
	assert.Equal(t, 0, result.Lines[0].DaysAbsent)

	stored, err := f.repo.GetPeriodByID(ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodCalculated, stored.Status)
}

func TestPayrollService_Calculate_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodDraft)
	f.addEmployee("emp-1", 2_000_000)
	f.addWorkDay("emp-1", 2, 8, 17)
	f.addWorkDay("emp-1", 3, 8, 16)

	first, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)
	second, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)

	require.Len(t, first.Lines, 1)
	require.Len(t, second.Lines, 1)

	// Line IDs are regenerated per run; every computed figure must match.
	a, b := first.Lines[0], second.Lines[0]
	assert.True(t, a.Net.Equal(b.Net))
	assert.True(t, a.Gross.Equal(b.Gross))
	assert.True(t, a.OvertimePay.Equal(b.OvertimePay))
	assert.True(t, a.AbsenceDeduction.Equal(b.AbsenceDeduction))
	assert.Equal(t, a.DaysPresent, b.DaysPresent)
	assert.Equal(t, a.DaysAbsent, b.DaysAbsent)

	// Still exactly one stored line for the employee.
	lines, err := f.repo.ListLines(ctx, "period-1")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestPayrollService_Calculate_ApprovedPeriodLocked(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodApproved)
	f.addEmployee("emp-1", 2_000_000)

	_, err := f.service.Calculate(ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrPeriodLocked)
}

func TestPayrollService_Calculate_RecalculableWhenCalculated(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodCalculated)
	f.addEmployee("emp-1", 2_000_000)

	result, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodCalculated), result.Status)
}

func TestPayrollService_Calculate_MissingProfileCollectedAsFailure(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodDraft)
	f.addEmployee("emp-ok", 2_000_000)
	f.employees.employees["emp-broken"] = employee.Employee{ID: "emp-broken", Name: "Broken", IsActive: true}

	result, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "emp-broken", result.Failures[0].EmployeeID)
	// The healthy employee still got a line.
	require.Len(t, result.Lines, 1)
	assert.Equal(t, "emp-ok", result.Lines[0].EmployeeID)

	_, err = f.repo.GetLine(ctx, "period-1", "emp-broken")
	assert.ErrorIs(t, err, payroll.ErrLineNotFound)
}

func TestPayrollService_Calculate_FailureRemovesStaleLine(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodCalculated)
	f.addEmployee("emp-1", 2_000_000)

	_, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)
	_, err = f.repo.GetLine(ctx, "period-1", "emp-1")
	require.NoError(t, err)

	// The profile disappears before the recalculation.
	delete(f.employees.profiles, "emp-1")

	result, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)

	_, err = f.repo.GetLine(ctx, "period-1", "emp-1")
	assert.ErrorIs(t, err, payroll.ErrLineNotFound)
}

func TestPayrollService_Calculate_MissingSalaryWarnsButComputes(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodDraft)
	f.employees.employees["emp-1"] = employee.Employee{ID: "emp-1", Name: "No Salary", IsActive: true}
	f.employees.profiles["emp-1"] = employee.CompensationProfile{EmployeeID: "emp-1", ShiftType: employee.ShiftDay}

	result, err := f.service.Calculate(ctx, "period-1")
	require.NoError(t, err)

	require.Len(t, result.Lines, 1)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, payroll.WarnMissingBasicSalary, result.Warnings[0].Code)
	assert.Empty(t, result.Failures)
}

func TestPayrollService_GetPeriodTotals_DerivesFromEvents(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodDraft)
	f.addEmployee("emp-1", 2_000_000)
	f.addWorkDay("emp-1", 1, 8, 18) // 10h: 8 regular + 2 overtime
	f.addWorkDay("emp-1", 2, 8, 16)
	f.leaves.intervals = append(f.leaves.intervals, leave.Interval{
		EmployeeID: "emp-1",
		StartDate:  time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		LeaveType:  "SICK",
		Status:     leave.StatusApproved,
	})

	totals, err := f.service.GetPeriodTotals(ctx, "emp-1", "period-1")
	require.NoError(t, err)

	assert.Equal(t, 2, totals.DaysPresent)
	assert.Equal(t, 1, totals.DaysOnLeave)
	assert.Equal(t, 2, totals.DaysAbsent) // March 4-5 have no facts
	assert.InDelta(t, 16.0, totals.RegularHours, 1e-9)
	assert.InDelta(t, 2.0, totals.OvertimeHours, 1e-9)
}

func TestPayrollService_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodCalculated)

	period, err := f.service.Approve(ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodApproved), period.Status)

	period, err = f.service.Pay(ctx, "period-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodPaid), period.Status)
}

func TestPayrollService_Approve_RejectsDraft(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodDraft)

	_, err := f.service.Approve(ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollService_Pay_RejectsCalculated(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodCalculated)

	_, err := f.service.Pay(ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollService_Approve_RejectsPaid(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()
	f.addPeriod("period-1", payroll.PeriodPaid)

	_, err := f.service.Approve(ctx, "period-1")
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestPayrollService_CreatePeriod_RejectsOverlap(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()

	_, err := f.service.CreatePeriod(ctx, payroll.CreatePeriodRequest{
		StartDate: "2026-03-01", EndDate: "2026-03-31",
	})
	require.NoError(t, err)

	_, err = f.service.CreatePeriod(ctx, payroll.CreatePeriodRequest{
		StartDate: "2026-03-15", EndDate: "2026-04-14",
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodOverlap)
}

func TestPayrollService_CreatePeriod_RejectsBadRange(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()

	_, err := f.service.CreatePeriod(ctx, payroll.CreatePeriodRequest{
		StartDate: "2026-03-31", EndDate: "2026-03-01",
	})
	assert.Error(t, err)
}

func TestPayrollService_Calculate_PeriodNotFound(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture()

	_, err := f.service.Calculate(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}
