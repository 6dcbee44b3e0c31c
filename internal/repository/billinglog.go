package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/billinglog"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type billingLogRepository struct {
	coll *store.Collection[billinglog.BillingLog]
	log  *logger.Logger
}

func (r *billingLogRepository) Create(ctx context.Context, l *billinglog.BillingLog) error {
	r.log.Infow("billing event",
		"organization_id", l.OrganizationID,
		"event", l.Event,
		"from_state", l.FromState,
		"to_state", l.ToState,
	)
	return r.coll.Insert(ctx, l.ID, l)
}

func (r *billingLogRepository) List(ctx context.Context, organizationID string) ([]*billinglog.BillingLog, error) {
	return r.coll.Find(ctx, store.Filter{"organization_id": organizationID}, newestFirst())
}
