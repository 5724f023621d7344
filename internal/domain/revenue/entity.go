package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShareType enum
type ShareType string

const (
	SharePercentage ShareType = "PERCENTAGE"
	ShareFixed      ShareType = "FIXED_AMOUNT"
)

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Stakeholder is any party entitled to a portion of billed service revenue:
// a clinician, a referring entity or the facility itself.
type Stakeholder struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}

// ShareTemplate is a configured rule describing how revenue from one billed
// service is split. Multiple templates may apply to a single service.
type ShareTemplate struct {
	ID            string
	ServiceID     string
	StakeholderID string
	ShareType     ShareType
	// Value is a percentage (0..100) for PERCENTAGE templates, an absolute
	// amount for FIXED_AMOUNT templates.
	Value     decimal.Decimal
	CreatedAt time.Time
}

// InvoiceLine is a billed service line. The allocator reads it and never
// mutates it.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ServiceID string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
	CreatedAt time.Time
}

// InvoiceShare is a stakeholder's computed portion of one invoice line.
// Shares are created once at allocation time and afterwards mutated only by
// payment-status updates; they are a historical record, never recomputed.
type InvoiceShare struct {
	ID            string
	InvoiceID     string
	InvoiceLineID string
	StakeholderID string
	ShareType     ShareType
	Amount        decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	StakeholderName *string
}

// Warning is a configuration finding reported with the allocation result.
type Warning struct {
	ServiceID string
	Code      string
	Message   string
}

const (
	WarnOverAllocation = "OVER_ALLOCATION"
	WarnFixedCapped    = "FIXED_AMOUNT_CAPPED"
)
