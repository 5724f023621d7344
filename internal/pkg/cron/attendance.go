package cron

import (
	"context"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
)

// AttendanceJobs contains attendance-related cron jobs
type AttendanceJobs struct {
	attendanceService attendance.Service
}

// NewAttendanceJobs creates attendance cron jobs
func NewAttendanceJobs(attendanceService attendance.Service) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
	}
}

// RegisterJobs registers all attendance-related cron jobs
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	// Re-derive yesterday's daily records every 6 hours. The derivation is
	// idempotent, so late manual corrections simply flow in on the next run.
	scheduler.AddJob(Job{
		Name:    "materialize_daily_attendance",
		Every:   6 * time.Hour,
		Timeout: 10 * time.Minute,
		Fn:      j.MaterializeYesterday,
	})
}

// MaterializeYesterday derives and stores daily records for the previous
// calendar day across all active employees.
func (j *AttendanceJobs) MaterializeYesterday(ctx context.Context) error {
	yesterday := time.Now().AddDate(0, 0, -1)
	return j.attendanceService.MaterializeDate(ctx, yesterday)
}
