package payroll

import (
	"context"
)

// Repository defines data access for payroll periods and lines.
type Repository interface {
	// Periods
	CreatePeriod(ctx context.Context, period Period) (Period, error)
	GetPeriodByID(ctx context.Context, id string) (Period, error)
	ListPeriods(ctx context.Context) ([]Period, error)

	// UpdatePeriodStatus performs a compare-and-set so a concurrent
	// transition cannot skip or reverse a state. Returns ErrInvalidTransition
	// when the stored status no longer matches from.
	UpdatePeriodStatus(ctx context.Context, id string, from, to PeriodStatus) error

	// Lines. ReplaceLine swaps the employee's line atomically so concurrent
	// readers never observe a half-updated period.
	ReplaceLine(ctx context.Context, line Line) (Line, error)
	DeleteLine(ctx context.Context, periodID, employeeID string) error
	GetLine(ctx context.Context, periodID, employeeID string) (Line, error)
	ListLines(ctx context.Context, periodID string) ([]Line, error)
}
