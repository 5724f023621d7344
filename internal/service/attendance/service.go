package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/domain/leave"
)

type AttendanceServiceImpl struct {
	events    attendance.ClockEventRepository
	records   attendance.DailyRecordRepository
	leaves    leave.Repository
	employees employee.Repository
	deriver   *Deriver
	capture   *CaptureMachine
}

func NewAttendanceService(
	events attendance.ClockEventRepository,
	records attendance.DailyRecordRepository,
	leaves leave.Repository,
	employees employee.Repository,
	deriver *Deriver,
	capture *CaptureMachine,
) attendance.Service {
	return &AttendanceServiceImpl{
		events:    events,
		records:   records,
		leaves:    leaves,
		employees: employees,
		deriver:   deriver,
		capture:   capture,
	}
}

// Scan implements attendance.Service.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ClockScanRequest) (attendance.ClockEventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockEventResponse{}, err
	}

	// A clock event referencing an unknown employee is fatal to the record.
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ClockEventResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.ClockEventResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	event, err := s.capture.Scan(ctx, req.EmployeeID, attendance.EventKind(req.Kind), attendance.EventSource(req.Source))
	if err != nil {
		return attendance.ClockEventResponse{ScanState: string(s.capture.State())}, err
	}

	return attendance.ClockEventResponse{
		ID:         event.ID,
		EmployeeID: event.EmployeeID,
		Date:       event.Date.Format("2006-01-02"),
		Time:       event.Time.Format("2006-01-02 15:04:05"),
		Kind:       string(event.Kind),
		Source:     string(event.Source),
		ScanState:  string(s.capture.State()),
	}, nil
}

// GetDailyAttendance implements attendance.Service. The record is derived
// fresh from the event store on every call; the materialized copy is updated
// as a side effect so listing screens stay current.
func (s *AttendanceServiceImpl) GetDailyAttendance(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecordResponse, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.DailyRecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.DailyRecordResponse{}, fmt.Errorf("failed to look up employee: %w", err)
	}

	record, err := s.derive(ctx, employeeID, date)
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}

	if err := s.records.Upsert(ctx, record); err != nil {
		return attendance.DailyRecordResponse{}, fmt.Errorf("failed to store daily record: %w", err)
	}

	record.EmployeeName = &emp.Name
	return mapRecordToResponse(record), nil
}

// MaterializeDate implements attendance.Service.
func (s *AttendanceServiceImpl) MaterializeDate(ctx context.Context, date time.Time) error {
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	for _, emp := range employees {
		record, err := s.derive(ctx, emp.ID, date)
		if err != nil {
			return err
		}
		if err := s.records.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to store daily record for employee %s: %w", emp.ID, err)
		}
		if record.NeedsReview {
			slog.Warn("attendance record flagged for manual review",
				"employee_id", emp.ID,
				"date", record.Date.Format("2006-01-02"))
		}
	}

	return nil
}

// ListRecords implements attendance.Service.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.records.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list daily records: %w", err)
	}

	responses := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    responses,
	}, nil
}

func (s *AttendanceServiceImpl) derive(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	events, err := s.events.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to load clock events: %w", err)
	}

	leaves, err := s.leaves.ListApprovedByEmployee(ctx, employeeID, date, date)
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to load leave intervals: %w", err)
	}

	return s.deriver.Derive(employeeID, date, events, leaves), nil
}

func mapRecordToResponse(rec attendance.DailyRecord) attendance.DailyRecordResponse {
	return attendance.DailyRecordResponse{
		EmployeeID:       rec.EmployeeID,
		EmployeeName:     rec.EmployeeName,
		Date:             rec.Date.Format("2006-01-02"),
		Status:           string(rec.Status),
		FirstIn:          timePtrToString(rec.FirstIn),
		LastOut:          timePtrToString(rec.LastOut),
		TotalHours:       rec.TotalHours,
		OvertimeHours:    rec.OvertimeHours,
		IsLate:           rec.IsLate,
		IsEarlyDeparture: rec.IsEarlyDeparture,
		LeaveType:        rec.LeaveType,
		NeedsReview:      rec.NeedsReview,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}
