package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/payroll"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type payrollRepository struct {
	coll *store.Collection[payroll.Entry]
	log  *logger.Logger
}

func (r *payrollRepository) Upsert(ctx context.Context, e *payroll.Entry) error {
	return r.coll.Upsert(ctx, e.ID, e)
}

func (r *payrollRepository) List(ctx context.Context, organizationID, period string) ([]*payroll.Entry, error) {
	return r.coll.Find(ctx, store.Filter{
		"organization_id": organizationID,
		"period":          period,
	}, &store.FindOptions{SortBy: "staff_name"})
}
