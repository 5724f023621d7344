package revenue

import "context"

// Service defines business logic for revenue sharing.
type Service interface {
	// AllocateShares computes the share set for a billed invoice line from
	// the service's templates. Allocation happens once; a second call for the
	// same line is rejected with ErrAlreadyAllocated.
	AllocateShares(ctx context.Context, invoiceLineID string) (AllocationResponse, error)

	ListShares(ctx context.Context, invoiceLineID string) ([]ShareResponse, error)

	// UpdateSharePayment is the only mutation a share accepts after creation.
	UpdateSharePayment(ctx context.Context, req UpdateSharePaymentRequest) (ShareResponse, error)
}
