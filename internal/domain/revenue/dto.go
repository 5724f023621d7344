package revenue

import (
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ShareResponse struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoice_id"`
	InvoiceLineID   string          `json:"invoice_line_id"`
	StakeholderID   string          `json:"stakeholder_id"`
	StakeholderName *string         `json:"stakeholder_name,omitempty"`
	ShareType       string          `json:"share_type"`
	Amount          decimal.Decimal `json:"amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	PaymentStatus   string          `json:"payment_status"`
}

type AllocationResponse struct {
	InvoiceLineID string            `json:"invoice_line_id"`
	LineTotal     decimal.Decimal   `json:"line_total"`
	Shares        []ShareResponse   `json:"shares"`
	Warnings      []WarningResponse `json:"warnings,omitempty"`
}

type WarningResponse struct {
	ServiceID string `json:"service_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

type UpdateSharePaymentRequest struct {
	ID         string           `json:"-"`
	AmountPaid *decimal.Decimal `json:"amount_paid,omitempty"`
	Status     string           `json:"status"`
}

func (r *UpdateSharePaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	switch PaymentStatus(r.Status) {
	case PaymentPending, PaymentPartial, PaymentPaid:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "must be PENDING, PARTIAL or PAID",
		})
	}

	if r.AmountPaid != nil && r.AmountPaid.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount_paid",
			Message: "must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
