package attendance

import (
	"context"
	"time"
)

// ClockEventRepository is the append-only event store. Append must serialize
// per employee per day and reject any event that would break the strict
// CHECK_IN/CHECK_OUT alternation, so the stored sequence is always alternating.
type ClockEventRepository interface {
	// Append records a new clock event after re-checking the alternation
	// invariant under a row lock. Returns ErrAlreadyCheckedIn,
	// ErrAlreadyCheckedOut or ErrNotCheckedIn when the event is out of order.
	Append(ctx context.Context, event ClockEvent) (ClockEvent, error)

	// LatestKind returns the kind of the most recent event for the employee
	// on the given date. ok is false when no event exists yet.
	LatestKind(ctx context.Context, employeeID string, date time.Time) (kind EventKind, ok bool, err error)

	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]ClockEvent, error)
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]ClockEvent, error)
	CountByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (int, error)
}

// DailyRecordRepository stores the materialized daily records. The derived
// record is a cache of a pure computation, never ground truth: Upsert replaces
// any previous record for the same (employee, date).
type DailyRecordRepository interface {
	Upsert(ctx context.Context, record DailyRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]DailyRecord, error)
	List(ctx context.Context, filter RecordFilter) ([]DailyRecord, int64, error)
}
