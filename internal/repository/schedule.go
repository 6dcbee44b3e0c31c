package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/schedule"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type scheduleRepository struct {
	coll *store.Collection[schedule.Shift]
	log  *logger.Logger
}

func (r *scheduleRepository) Create(ctx context.Context, s *schedule.Shift) error {
	r.log.Debugw("creating shift", "shift_id", s.ID, "staff_id", s.StaffID, "starts_at", s.StartsAt)
	return r.coll.Insert(ctx, s.ID, s)
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*schedule.Shift, error) {
	s, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, s.OrganizationID); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return r.coll.Delete(ctx, id)
}

func (r *scheduleRepository) List(ctx context.Context, f schedule.Filter) ([]*schedule.Shift, error) {
	filter := store.Filter{"organization_id": f.OrganizationID}
	if f.StaffID != "" {
		filter["staff_id"] = f.StaffID
	}
	if f.LocationID != "" {
		filter["location_id"] = f.LocationID
	}
	return r.coll.Find(ctx, filter, &store.FindOptions{SortBy: "starts_at"})
}
