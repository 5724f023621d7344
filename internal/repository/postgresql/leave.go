package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/leave"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

// ListApprovedByEmployee implements leave.Repository. End dates are
// inclusive, so an interval overlaps the range when it starts no later than
// the range end and ends no earlier than the range start.
func (r *leaveRepository) ListApprovedByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Interval, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, start_date, end_date, leave_type, status, created_at
		FROM leave_intervals
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date ASC
	`, employeeID, leave.StatusApproved, end, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave intervals: %w", err)
	}
	defer rows.Close()

	var intervals []leave.Interval
	for rows.Next() {
		var iv leave.Interval
		if err := rows.Scan(&iv.ID, &iv.EmployeeID, &iv.StartDate, &iv.EndDate, &iv.LeaveType, &iv.Status, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave intervals: %w", err)
	}

	return intervals, nil
}
