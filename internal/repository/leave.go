package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/leave"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type leaveRepository struct {
	coll *store.Collection[leave.Request]
	log  *logger.Logger
}

func (r *leaveRepository) Create(ctx context.Context, req *leave.Request) error {
	r.log.Debugw("creating leave request", "leave_id", req.ID, "staff_id", req.StaffID)
	return r.coll.Insert(ctx, req.ID, req)
}

func (r *leaveRepository) Get(ctx context.Context, id string) (*leave.Request, error) {
	req, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, req.OrganizationID); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *leaveRepository) Update(ctx context.Context, req *leave.Request) error {
	if err := inScope(ctx, r.coll.Name(), req.ID, req.OrganizationID); err != nil {
		return err
	}
	return r.coll.Replace(ctx, req.ID, req)
}

func (r *leaveRepository) List(ctx context.Context, f leave.Filter) ([]*leave.Request, error) {
	filter := store.Filter{"organization_id": f.OrganizationID}
	if f.StaffID != "" {
		filter["staff_id"] = f.StaffID
	}
	if len(f.Statuses) > 0 {
		filter["leave_status"] = store.AnyOf(f.Statuses...)
	}
	return r.coll.Find(ctx, filter, newestFirst())
}
