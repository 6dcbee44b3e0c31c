package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

type subscriptionRepository struct {
	coll *store.Collection[subscription.Subscription]
	log  *logger.Logger
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.log.Debugw("creating subscription",
		"organization_id", sub.ID,
		"plan", sub.Plan,
		"billing_state", sub.BillingState,
	)
	return r.coll.Insert(ctx, sub.ID, sub)
}

func (r *subscriptionRepository) Get(ctx context.Context, organizationID string) (*subscription.Subscription, error) {
	if err := inScope(ctx, r.coll.Name(), organizationID, organizationID); err != nil {
		return nil, err
	}
	return r.coll.Get(ctx, organizationID)
}

// Update overwrites the stored record, last write wins
func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if err := inScope(ctx, r.coll.Name(), sub.ID, sub.ID); err != nil {
		return err
	}
	sub.Version++
	return r.coll.Replace(ctx, sub.ID, sub)
}

func (r *subscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	return r.coll.Find(ctx, store.Filter{}, oldestFirst())
}

func (r *subscriptionRepository) ListByPaymentMode(ctx context.Context, mode types.PaymentMode) ([]*subscription.Subscription, error) {
	return r.coll.Find(ctx, store.Filter{"payment_mode": mode}, oldestFirst())
}
