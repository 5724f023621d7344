package leave

import (
	"context"
	"time"
)

// Repository reads the external leave-approval store. The payroll core never
// writes to it.
type Repository interface {
	// ListApprovedByEmployee returns APPROVED intervals overlapping [start, end].
	ListApprovedByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]Interval, error)
}
