package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/organization"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

type organizationRepository struct {
	coll *store.Collection[organization.Organization]
	log  *logger.Logger
}

func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	r.log.Debugw("creating organization", "organization_id", org.ID, "plan", org.Plan)
	return r.coll.Insert(ctx, org.ID, org)
}

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	if err := inScope(ctx, r.coll.Name(), id, id); err != nil {
		return nil, err
	}
	return r.coll.Get(ctx, id)
}

func (r *organizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	if err := inScope(ctx, r.coll.Name(), org.ID, org.ID); err != nil {
		return err
	}
	return r.coll.Replace(ctx, org.ID, org)
}

func (r *organizationRepository) ListByVerificationStatus(ctx context.Context, status types.VerificationStatus) ([]*organization.Organization, error) {
	return r.coll.Find(ctx, store.Filter{"verification_status": status}, oldestFirst())
}
