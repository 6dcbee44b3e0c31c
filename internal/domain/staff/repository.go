package staff

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Filter selects staff of one organization
type Filter struct {
	OrganizationID  string
	Roles           []types.SystemRole
	LocationID      string
	IncludeArchived bool
}

type Repository interface {
	Create(ctx context.Context, s *Staff) error
	Get(ctx context.Context, id string) (*Staff, error)
	// GetByUserID returns the live profile of a user, in any organization when organizationID is empty
	GetByUserID(ctx context.Context, organizationID, userID string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
	List(ctx context.Context, filter Filter) ([]*Staff, error)
	Count(ctx context.Context, filter Filter) (int, error)
}
