package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/attendance"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type attendanceRepository struct {
	coll *store.Collection[attendance.Record]
	log  *logger.Logger
}

func (r *attendanceRepository) Create(ctx context.Context, rec *attendance.Record) error {
	r.log.Debugw("clock in", "attendance_id", rec.ID, "staff_id", rec.StaffID, "late", rec.Late)
	return r.coll.Insert(ctx, rec.ID, rec)
}

func (r *attendanceRepository) Get(ctx context.Context, id string) (*attendance.Record, error) {
	rec, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, rec.OrganizationID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *attendanceRepository) Update(ctx context.Context, rec *attendance.Record) error {
	if err := inScope(ctx, r.coll.Name(), rec.ID, rec.OrganizationID); err != nil {
		return err
	}
	return r.coll.Replace(ctx, rec.ID, rec)
}

func (r *attendanceRepository) GetOpen(ctx context.Context, organizationID, staffID string) (*attendance.Record, error) {
	return r.coll.FindOne(ctx, store.Filter{
		"organization_id": organizationID,
		"staff_id":        staffID,
		"clock_out_at":    nil,
	})
}

func (r *attendanceRepository) List(ctx context.Context, organizationID, staffID string) ([]*attendance.Record, error) {
	filter := store.Filter{"organization_id": organizationID}
	if staffID != "" {
		filter["staff_id"] = staffID
	}
	return r.coll.Find(ctx, filter, &store.FindOptions{SortBy: "clock_in_at", Descending: true})
}
