package attendance

import (
	"context"
	"time"
)

// Service defines business logic for attendance operations.
type Service interface {
	// Scan processes a CHECK_IN or CHECK_OUT attempt through the capture
	// guard. Out-of-order attempts are rejected without appending an event.
	Scan(ctx context.Context, req ClockScanRequest) (ClockEventResponse, error)

	// GetDailyAttendance derives the single daily record for an employee on
	// a date from the event store and approved leave.
	GetDailyAttendance(ctx context.Context, employeeID string, date time.Time) (DailyRecordResponse, error)

	// MaterializeDate re-derives and stores the daily record of every active
	// employee for the given date. Safe to re-run at any time.
	MaterializeDate(ctx context.Context, date time.Time) error

	// ListRecords returns materialized daily records for review screens.
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
}
