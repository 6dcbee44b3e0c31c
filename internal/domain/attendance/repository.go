package attendance

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, r *Record) error
	// GetOpen returns the record without a clock out, or ErrNotFound
	GetOpen(ctx context.Context, organizationID, staffID string) (*Record, error)
	// List returns records newest first, optionally for one staff member
	List(ctx context.Context, organizationID, staffID string) ([]*Record, error)
}
