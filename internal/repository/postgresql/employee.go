package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/employee"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var e employee.Employee
	err := q.QueryRow(ctx, `
		SELECT id, name, department, is_active, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Department, &e.IsActive, &e.HireDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// ListActive implements employee.Repository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, department, is_active, hire_date, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Department, &e.IsActive, &e.HireDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetCompensationProfile implements employee.Repository. Loan columns are
// nullable as a pair; a profile only carries a loan when both are set.
func (r *employeeRepository) GetCompensationProfile(ctx context.Context, employeeID string) (employee.CompensationProfile, error) {
	q := GetQuerier(ctx, r.db)

	var (
		p               employee.CompensationProfile
		loanPrincipal   *decimal.Decimal
		loanInstallment *decimal.Decimal
	)
	err := q.QueryRow(ctx, `
		SELECT employee_id, basic_salary, grade, shift_type,
		       loan_principal, loan_installment, bank_name, account_number
		FROM compensation_profiles
		WHERE employee_id = $1
	`, employeeID).Scan(
		&p.EmployeeID, &p.BasicSalary, &p.Grade, &p.ShiftType,
		&loanPrincipal, &loanInstallment, &p.BankName, &p.AccountNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.CompensationProfile{}, employee.ErrProfileNotFound
		}
		return employee.CompensationProfile{}, fmt.Errorf("failed to get compensation profile: %w", err)
	}

	if loanPrincipal != nil && loanInstallment != nil {
		p.Loan = &employee.Loan{
			Principal:   *loanPrincipal,
			Installment: *loanInstallment,
		}
	}

	return p, nil
}
