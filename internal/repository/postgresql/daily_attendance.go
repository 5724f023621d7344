package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dailyRecordRepository struct {
	db *database.DB
}

func NewDailyRecordRepository(db *database.DB) attendance.DailyRecordRepository {
	return &dailyRecordRepository{db: db}
}

// Upsert implements attendance.DailyRecordRepository. The unique
// (employee_id, date) constraint keeps exactly one record per employee-day.
func (r *dailyRecordRepository) Upsert(ctx context.Context, record attendance.DailyRecord) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO daily_attendance (
			employee_id, date, status, first_in, last_out,
			total_hours, overtime_hours, is_late, is_early_departure,
			leave_type, needs_review
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			first_in = EXCLUDED.first_in,
			last_out = EXCLUDED.last_out,
			total_hours = EXCLUDED.total_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			is_late = EXCLUDED.is_late,
			is_early_departure = EXCLUDED.is_early_departure,
			leave_type = EXCLUDED.leave_type,
			needs_review = EXCLUDED.needs_review,
			updated_at = NOW()
	`,
		record.EmployeeID,
		record.Date,
		record.Status,
		record.FirstIn,
		record.LastOut,
		record.TotalHours,
		record.OvertimeHours,
		record.IsLate,
		record.IsEarlyDeparture,
		record.LeaveType,
		record.NeedsReview,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily record: %w", err)
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	var rec attendance.DailyRecord
	err := q.QueryRow(ctx, `
		SELECT d.employee_id, d.date, d.status, d.first_in, d.last_out,
			   d.total_hours, d.overtime_hours, d.is_late, d.is_early_departure,
			   d.leave_type, d.needs_review, e.name
		FROM daily_attendance d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		  AND d.date = $2
	`, employeeID, date).Scan(
		&rec.EmployeeID, &rec.Date, &rec.Status, &rec.FirstIn, &rec.LastOut,
		&rec.TotalHours, &rec.OvertimeHours, &rec.IsLate, &rec.IsEarlyDeparture,
		&rec.LeaveType, &rec.NeedsReview, &rec.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	return rec, nil
}

// ListByEmployeeBetween implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT employee_id, date, status, first_in, last_out,
			   total_hours, overtime_hours, is_late, is_early_departure,
			   leave_type, needs_review
		FROM daily_attendance
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		if err := rows.Scan(
			&rec.EmployeeID, &rec.Date, &rec.Status, &rec.FirstIn, &rec.LastOut,
			&rec.TotalHours, &rec.OvertimeHours, &rec.IsLate, &rec.IsEarlyDeparture,
			&rec.LeaveType, &rec.NeedsReview,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily records: %w", err)
	}

	return records, nil
}

// List implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.DailyRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		addCondition("d.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		addCondition("d.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		addCondition("d.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil && *filter.Status != "" {
		addCondition("d.status = $%d", *filter.Status)
	}
	if filter.NeedsReview != nil {
		addCondition("d.needs_review = $%d", *filter.NeedsReview)
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM daily_attendance d WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count daily records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT d.employee_id, d.date, d.status, d.first_in, d.last_out,
			   d.total_hours, d.overtime_hours, d.is_late, d.is_early_departure,
			   d.leave_type, d.needs_review, e.name
		FROM daily_attendance d
		JOIN employees e ON e.id = d.employee_id
		WHERE %s
		ORDER BY d.date DESC, e.name ASC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		if err := rows.Scan(
			&rec.EmployeeID, &rec.Date, &rec.Status, &rec.FirstIn, &rec.LastOut,
			&rec.TotalHours, &rec.OvertimeHours, &rec.IsLate, &rec.IsEarlyDeparture,
			&rec.LeaveType, &rec.NeedsReview, &rec.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate daily records: %w", err)
	}

	return records, total, nil
}
