package location

import "context"

type Repository interface {
	Create(ctx context.Context, loc *Location) error
	Get(ctx context.Context, id string) (*Location, error)
	Update(ctx context.Context, loc *Location) error
	// List returns live locations of the organization
	List(ctx context.Context, organizationID string) ([]*Location, error)
	CountLive(ctx context.Context, organizationID string) (int, error)
}
