package schedule

import "context"

// Filter selects shifts of one organization
type Filter struct {
	OrganizationID string
	StaffID        string
	LocationID     string
}

type Repository interface {
	Create(ctx context.Context, s *Shift) error
	Get(ctx context.Context, id string) (*Shift, error)
	Delete(ctx context.Context, id string) error
	// List returns matching shifts ordered by start time
	List(ctx context.Context, filter Filter) ([]*Shift, error)
}
