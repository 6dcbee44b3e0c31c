package role

import "context"

type Repository interface {
	Create(ctx context.Context, r *CustomRole) error
	Get(ctx context.Context, id string) (*CustomRole, error)
	Update(ctx context.Context, r *CustomRole) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, organizationID string) ([]*CustomRole, error)
}
