package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/location"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

type locationRepository struct {
	coll *store.Collection[location.Location]
	log  *logger.Logger
}

func (r *locationRepository) Create(ctx context.Context, loc *location.Location) error {
	r.log.Debugw("creating location", "location_id", loc.ID, "organization_id", loc.OrganizationID)
	return r.coll.Insert(ctx, loc.ID, loc)
}

func (r *locationRepository) Get(ctx context.Context, id string) (*location.Location, error) {
	loc, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, loc.OrganizationID); err != nil {
		return nil, err
	}
	return loc, nil
}

func (r *locationRepository) Update(ctx context.Context, loc *location.Location) error {
	if err := inScope(ctx, r.coll.Name(), loc.ID, loc.OrganizationID); err != nil {
		return err
	}
	return r.coll.Replace(ctx, loc.ID, loc)
}

func (r *locationRepository) List(ctx context.Context, organizationID string) ([]*location.Location, error) {
	return r.coll.Find(ctx, liveIn(organizationID), oldestFirst())
}

func (r *locationRepository) CountLive(ctx context.Context, organizationID string) (int, error) {
	n, err := r.coll.Count(ctx, liveIn(organizationID))
	return int(n), err
}

func liveIn(organizationID string) store.Filter {
	return store.Filter{
		"organization_id": organizationID,
		"status":          types.StatusPublished,
	}
}
