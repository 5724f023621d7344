package attendance

import (
	"time"
)

// EventKind enum
type EventKind string

const (
	EventCheckIn  EventKind = "CHECK_IN"
	EventCheckOut EventKind = "CHECK_OUT"
)

// EventSource enum
type EventSource string

const (
	SourceBiometric EventSource = "biometric"
	SourceManual    EventSource = "manual"
)

// ClockEvent is a single recorded check-in or check-out for an employee.
// Events are immutable once recorded; the store is append-only.
type ClockEvent struct {
	ID         string
	EmployeeID string
	Date       time.Time // calendar day, truncated to midnight
	Time       time.Time // actual timestamp of the scan
	Kind       EventKind
	Source     EventSource
	CreatedAt  time.Time
}

// Status enum for a derived daily record
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "ON_LEAVE"
)

// DailyRecord is the derived attendance status for one employee on one
// calendar date. It is recomputable at any time from clock events and
// approved leave; there is exactly one record per (employee, date).
type DailyRecord struct {
	EmployeeID       string
	Date             time.Time
	Status           Status
	FirstIn          *time.Time
	LastOut          *time.Time // nil while the employee is still in
	TotalHours       float64
	OvertimeHours    float64
	IsLate           bool
	IsEarlyDeparture bool
	LeaveType        *string
	NeedsReview      bool // set when the event sequence was inconsistent

	// DTO
	EmployeeName *string
}

// TimeOfDay is a wall-clock threshold independent of any particular date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// On anchors the threshold to a calendar date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// ShiftRules holds the attendance policy thresholds. Values come from
// configuration so policy changes never touch derivation code.
type ShiftRules struct {
	StandardShiftHours float64
	LateAfter          TimeOfDay
	EarlyBefore        TimeOfDay
}

// DefaultShiftRules returns the standard day-shift policy.
func DefaultShiftRules() ShiftRules {
	return ShiftRules{
		StandardShiftHours: 8,
		LateAfter:          TimeOfDay{Hour: 8, Minute: 30},
		EarlyBefore:        TimeOfDay{Hour: 16, Minute: 30},
	}
}
