package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/payroll"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// CreatePeriod implements payroll.Repository. The overlap check and insert run
// in one transaction so two concurrent creates cannot both pass the check.
func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.Period) (payroll.Period, error) {
	var created payroll.Period

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var overlaps bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM payroll_periods
				WHERE start_date <= $1 AND end_date >= $2
			)
		`, period.EndDate, period.StartDate).Scan(&overlaps)
		if err != nil {
			return fmt.Errorf("failed to check period overlap: %w", err)
		}
		if overlaps {
			return payroll.ErrPeriodOverlap
		}

		created = period
		err = tx.QueryRow(ctx, `
			INSERT INTO payroll_periods (id, start_date, end_date, status)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`, period.ID, period.StartDate, period.EndDate, period.Status).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create payroll period: %w", err)
		}

		return nil
	})
	if err != nil {
		return payroll.Period{}, err
	}

	return created, nil
}

// GetPeriodByID implements payroll.Repository.
func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	var p payroll.Period
	err := q.QueryRow(ctx, `
		SELECT id, start_date, end_date, status, created_at, updated_at
		FROM payroll_periods
		WHERE id = $1
	`, id).Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Period{}, payroll.ErrPeriodNotFound
		}
		return payroll.Period{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

// ListPeriods implements payroll.Repository.
func (r *payrollRepository) ListPeriods(ctx context.Context) ([]payroll.Period, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, start_date, end_date, status, created_at, updated_at
		FROM payroll_periods
		ORDER BY start_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.Period
	for rows.Next() {
		var p payroll.Period
		if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll periods: %w", err)
	}

	return periods, nil
}

// UpdatePeriodStatus implements payroll.Repository. The WHERE clause carries
// the expected current status so a concurrent transition loses cleanly instead
// of overwriting.
func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, from, to payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_periods
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the period vanished or its status moved under us.
		if _, err := r.GetPeriodByID(ctx, id); err != nil {
			return err
		}
		return payroll.ErrInvalidTransition
	}

	return nil
}

// ReplaceLine implements payroll.Repository. Delete plus insert in one
// transaction keeps the one-line-per-employee invariant without relying on an
// upsert over every column.
func (r *payrollRepository) ReplaceLine(ctx context.Context, line payroll.Line) (payroll.Line, error) {
	created := line

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM payroll_lines WHERE period_id = $1 AND employee_id = $2
		`, line.PeriodID, line.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to delete existing payroll line: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO payroll_lines (
				id, period_id, employee_id,
				basic, housing_allowance, transport_allowance, meal_allowance,
				overtime_pay, night_shift_premium, gross,
				social_security_employee, social_security_employer, income_tax,
				loan_repayment, absence_deduction, total_deductions, net,
				days_present, days_absent, days_on_leave, overtime_hours
			)
			VALUES (
				$1, $2, $3,
				$4, $5, $6, $7,
				$8, $9, $10,
				$11, $12, $13,
				$14, $15, $16, $17,
				$18, $19, $20, $21
			)
			RETURNING created_at, updated_at
		`,
			line.ID, line.PeriodID, line.EmployeeID,
			line.Basic, line.HousingAllowance, line.TransportAllowance, line.MealAllowance,
			line.OvertimePay, line.NightShiftPremium, line.Gross,
			line.SocialSecurityEmployee, line.SocialSecurityEmployer, line.IncomeTax,
			line.LoanRepayment, line.AbsenceDeduction, line.TotalDeductions, line.Net,
			line.DaysPresent, line.DaysAbsent, line.DaysOnLeave, line.OvertimeHours,
		).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert payroll line: %w", err)
		}

		return nil
	})
	if err != nil {
		return payroll.Line{}, err
	}

	return created, nil
}

// DeleteLine implements payroll.Repository.
func (r *payrollRepository) DeleteLine(ctx context.Context, periodID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM payroll_lines WHERE period_id = $1 AND employee_id = $2
	`, periodID, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete payroll line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrLineNotFound
	}

	return nil
}

// GetLine implements payroll.Repository.
func (r *payrollRepository) GetLine(ctx context.Context, periodID, employeeID string) (payroll.Line, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, lineSelect+`
		WHERE pl.period_id = $1 AND pl.employee_id = $2
	`, periodID, employeeID)
	if err != nil {
		return payroll.Line{}, fmt.Errorf("failed to get payroll line: %w", err)
	}

	lines, err := scanLines(rows)
	if err != nil {
		return payroll.Line{}, err
	}
	if len(lines) == 0 {
		return payroll.Line{}, payroll.ErrLineNotFound
	}

	return lines[0], nil
}

// ListLines implements payroll.Repository.
func (r *payrollRepository) ListLines(ctx context.Context, periodID string) ([]payroll.Line, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, lineSelect+`
		WHERE pl.period_id = $1
		ORDER BY e.name ASC
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}

	return scanLines(rows)
}

const lineSelect = `
	SELECT pl.id, pl.period_id, pl.employee_id,
	       pl.basic, pl.housing_allowance, pl.transport_allowance, pl.meal_allowance,
	       pl.overtime_pay, pl.night_shift_premium, pl.gross,
	       pl.social_security_employee, pl.social_security_employer, pl.income_tax,
	       pl.loan_repayment, pl.absence_deduction, pl.total_deductions, pl.net,
	       pl.days_present, pl.days_absent, pl.days_on_leave, pl.overtime_hours,
	       pl.created_at, pl.updated_at, e.name
	FROM payroll_lines pl
	JOIN employees e ON e.id = pl.employee_id
`

func scanLines(rows pgx.Rows) ([]payroll.Line, error) {
	defer rows.Close()

	var lines []payroll.Line
	for rows.Next() {
		var l payroll.Line
		err := rows.Scan(
			&l.ID, &l.PeriodID, &l.EmployeeID,
			&l.Basic, &l.HousingAllowance, &l.TransportAllowance, &l.MealAllowance,
			&l.OvertimePay, &l.NightShiftPremium, &l.Gross,
			&l.SocialSecurityEmployee, &l.SocialSecurityEmployer, &l.IncomeTax,
			&l.LoanRepayment, &l.AbsenceDeduction, &l.TotalDeductions, &l.Net,
			&l.DaysPresent, &l.DaysAbsent, &l.DaysOnLeave, &l.OvertimeHours,
			&l.CreatedAt, &l.UpdatedAt, &l.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll lines: %w", err)
	}

	return lines, nil
}
