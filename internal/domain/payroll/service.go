package payroll

import (
	"context"
)

// Service defines business logic for payroll periods.
type Service interface {
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)

	// Calculate recomputes every line of the period from the event store.
	// The run is a pure recomputation: rerunning it with unchanged inputs
	// produces identical lines. Rejected with ErrPeriodLocked once APPROVED.
	Calculate(ctx context.Context, periodID string) (RunResultResponse, error)

	// GetPeriodTotals derives and aggregates one employee's attendance facts
	// for the period, without touching stored lines.
	GetPeriodTotals(ctx context.Context, employeeID, periodID string) (PeriodTotalsResponse, error)

	ListLines(ctx context.Context, periodID string) ([]LineResponse, error)

	// Approve moves CALCULATED -> APPROVED; Pay moves APPROVED -> PAID.
	Approve(ctx context.Context, periodID string) (PeriodResponse, error)
	Pay(ctx context.Context, periodID string) (PeriodResponse, error)
}
