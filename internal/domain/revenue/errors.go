package revenue

import "errors"

var (
	ErrInvoiceLineNotFound   = errors.New("invoice line not found")
	ErrStakeholderNotFound   = errors.New("stakeholder not found")
	ErrShareNotFound         = errors.New("invoice share not found")
	ErrAlreadyAllocated      = errors.New("shares already allocated for this invoice line")
	ErrNoTemplatesForService = errors.New("no share templates configured for this service")
	ErrInvalidPaymentAmount  = errors.New("amount paid must not exceed the share amount")
)
