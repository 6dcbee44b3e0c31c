package leave

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Filter selects leave requests of one organization
type Filter struct {
	OrganizationID string
	StaffID        string
	Statuses       []types.LeaveStatus
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, r *Request) error
	List(ctx context.Context, filter Filter) ([]*Request, error)
}
