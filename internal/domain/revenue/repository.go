package revenue

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines data access for revenue sharing.
type Repository interface {
	GetInvoiceLine(ctx context.Context, id string) (InvoiceLine, error)
	ListTemplatesByService(ctx context.Context, serviceID string) ([]ShareTemplate, error)
	GetStakeholder(ctx context.Context, id string) (Stakeholder, error)

	// CreateShares inserts the full share set for one invoice line in a
	// single transaction.
	CreateShares(ctx context.Context, shares []InvoiceShare) ([]InvoiceShare, error)
	ListSharesByInvoiceLine(ctx context.Context, invoiceLineID string) ([]InvoiceShare, error)
	GetShare(ctx context.Context, id string) (InvoiceShare, error)
	UpdateSharePayment(ctx context.Context, id string, status PaymentStatus, amountPaid decimal.Decimal) error
}
