package leave

import (
	"time"
)

// ApprovalStatus enum
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Interval is an approved-or-pending leave range, end date inclusive.
// Leave approval happens outside this core; only APPROVED intervals
// participate in attendance derivation.
type Interval struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	LeaveType  string
	Status     ApprovalStatus
	CreatedAt  time.Time
}

// Covers reports whether the interval includes the given calendar date.
// Boundaries are inclusive and compared by calendar day in each value's own
// location, so a local-midnight date near a UTC day boundary stays on its day.
func (i Interval) Covers(date time.Time) bool {
	d := calendarDay(date)
	return d >= calendarDay(i.StartDate) && d <= calendarDay(i.EndDate)
}

func calendarDay(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
