package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/attendance"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type clockEventRepository struct {
	db *database.DB
}

func NewClockEventRepository(db *database.DB) attendance.ClockEventRepository {
	return &clockEventRepository{db: db}
}

// Append implements attendance.ClockEventRepository. The alternation check
// and the insert run in one transaction with the employee's latest event for
// the day locked, so two concurrent scans cannot both pass the check.
func (r *clockEventRepository) Append(ctx context.Context, event attendance.ClockEvent) (attendance.ClockEvent, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var latest attendance.EventKind
		err := tx.QueryRow(ctx, `
			SELECT kind
			FROM clock_events
			WHERE employee_id = $1
			  AND date = $2
			ORDER BY time DESC
			LIMIT 1
			FOR UPDATE
		`, event.EmployeeID, event.Date).Scan(&latest)

		hasPrior := true
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to load latest clock event: %w", err)
			}
			hasPrior = false
		}

		switch event.Kind {
		case attendance.EventCheckIn:
			if hasPrior && latest == attendance.EventCheckIn {
				return attendance.ErrAlreadyCheckedIn
			}
		case attendance.EventCheckOut:
			if !hasPrior {
				return attendance.ErrNotCheckedIn
			}
			if latest == attendance.EventCheckOut {
				return attendance.ErrAlreadyCheckedOut
			}
		default:
			return attendance.ErrUnknownEventKind
		}

		return tx.QueryRow(ctx, `
			INSERT INTO clock_events (id, employee_id, date, time, kind, source)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at
		`, event.ID, event.EmployeeID, event.Date, event.Time, event.Kind, event.Source).Scan(&event.CreatedAt)
	})
	if err != nil {
		return attendance.ClockEvent{}, err
	}

	return event, nil
}

// LatestKind implements attendance.ClockEventRepository.
func (r *clockEventRepository) LatestKind(ctx context.Context, employeeID string, date time.Time) (attendance.EventKind, bool, error) {
	q := GetQuerier(ctx, r.db)

	var kind attendance.EventKind
	err := q.QueryRow(ctx, `
		SELECT kind
		FROM clock_events
		WHERE employee_id = $1
		  AND date = $2
		ORDER BY time DESC
		LIMIT 1
	`, employeeID, date).Scan(&kind)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get latest clock event kind: %w", err)
	}

	return kind, true, nil
}

// ListByEmployeeAndDate implements attendance.ClockEventRepository.
func (r *clockEventRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, date, time, kind, source, created_at
		FROM clock_events
		WHERE employee_id = $1
		  AND date = $2
		ORDER BY time ASC
	`, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	return scanClockEvents(rows)
}

// ListByEmployeeBetween implements attendance.ClockEventRepository.
func (r *clockEventRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.ClockEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, employee_id, date, time, kind, source, created_at
		FROM clock_events
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY time ASC
	`, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock events: %w", err)
	}
	defer rows.Close()

	return scanClockEvents(rows)
}

// CountByEmployeeAndDate implements attendance.ClockEventRepository.
func (r *clockEventRepository) CountByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM clock_events
		WHERE employee_id = $1
		  AND date = $2
	`, employeeID, date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clock events: %w", err)
	}

	return count, nil
}

func scanClockEvents(rows pgx.Rows) ([]attendance.ClockEvent, error) {
	var events []attendance.ClockEvent
	for rows.Next() {
		var ev attendance.ClockEvent
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.Date, &ev.Time, &ev.Kind, &ev.Source, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan clock event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock events: %w", err)
	}
	return events, nil
}
