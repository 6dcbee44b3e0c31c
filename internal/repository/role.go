package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/role"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type roleRepository struct {
	coll *store.Collection[role.CustomRole]
	log  *logger.Logger
}

func (r *roleRepository) Create(ctx context.Context, cr *role.CustomRole) error {
	r.log.Debugw("creating custom role", "role_id", cr.ID, "organization_id", cr.OrganizationID)
	return r.coll.Insert(ctx, cr.ID, cr)
}

func (r *roleRepository) Get(ctx context.Context, id string) (*role.CustomRole, error) {
	cr, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, cr.OrganizationID); err != nil {
		return nil, err
	}
	return cr, nil
}

func (r *roleRepository) Update(ctx context.Context, cr *role.CustomRole) error {
	if err := inScope(ctx, r.coll.Name(), cr.ID, cr.OrganizationID); err != nil {
		return err
	}
	return r.coll.Replace(ctx, cr.ID, cr)
}

func (r *roleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return r.coll.Delete(ctx, id)
}

func (r *roleRepository) List(ctx context.Context, organizationID string) ([]*role.CustomRole, error) {
	return r.coll.Find(ctx, store.Filter{"organization_id": organizationID}, &store.FindOptions{SortBy: "name"})
}
