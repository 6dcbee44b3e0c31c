package organization

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Repository defines the interface for organization persistence
type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	ListByVerificationStatus(ctx context.Context, status types.VerificationStatus) ([]*Organization, error)
}
