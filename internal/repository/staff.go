package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/staff"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

type staffRepository struct {
	coll *store.Collection[staff.Staff]
	log  *logger.Logger
}

func (r *staffRepository) Create(ctx context.Context, s *staff.Staff) error {
	r.log.Debugw("creating staff",
		"staff_id", s.ID,
		"organization_id", s.OrganizationID,
		"system_role", s.SystemRole,
	)
	return r.coll.Insert(ctx, s.ID, s)
}

func (r *staffRepository) Get(ctx context.Context, id string) (*staff.Staff, error) {
	s, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, s.OrganizationID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *staffRepository) GetByUserID(ctx context.Context, organizationID, userID string) (*staff.Staff, error) {
	filter := store.Filter{
		"user_id": userID,
		"status":  types.StatusPublished,
	}
	if organizationID != "" {
		filter["organization_id"] = organizationID
	}
	return r.coll.FindOne(ctx, filter)
}

func (r *staffRepository) Update(ctx context.Context, s *staff.Staff) error {
	if err := inScope(ctx, r.coll.Name(), s.ID, s.OrganizationID); err != nil {
		return err
	}
	return r.coll.Replace(ctx, s.ID, s)
}

func (r *staffRepository) List(ctx context.Context, filter staff.Filter) ([]*staff.Staff, error) {
	return r.coll.Find(ctx, staffFilter(filter), &store.FindOptions{SortBy: "name"})
}

func (r *staffRepository) Count(ctx context.Context, filter staff.Filter) (int, error) {
	n, err := r.coll.Count(ctx, staffFilter(filter))
	return int(n), err
}

func staffFilter(f staff.Filter) store.Filter {
	filter := store.Filter{"organization_id": f.OrganizationID}
	if !f.IncludeArchived {
		filter["status"] = types.StatusPublished
	}
	if len(f.Roles) > 0 {
		filter["system_role"] = store.AnyOf(f.Roles...)
	}
	if f.LocationID != "" {
		filter["location_id"] = f.LocationID
	}
	return filter
}
