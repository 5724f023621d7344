package employee

import "context"

// Repository reads the external employee directory.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	GetCompensationProfile(ctx context.Context, employeeID string) (CompensationProfile, error)
}
