package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/payment"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

type paymentRepository struct {
	coll *store.Collection[payment.Payment]
	log  *logger.Logger
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	r.log.Debugw("creating payment",
		"payment_id", p.ID,
		"organization_id", p.OrganizationID,
		"provider", p.Provider,
		"amount_cents", p.AmountCents,
	)
	return r.coll.Insert(ctx, p.ID, p)
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := r.coll.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.coll.Name(), id, p.OrganizationID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	current, err := r.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if current.IsCompleted() {
		return ierr.NewError("payment already completed").
			WithHint("A completed payment cannot be changed").
			WithReportableDetails(map[string]any{"payment_id": p.ID}).
			Mark(ierr.ErrInvalidOperation)
	}
	return r.coll.Replace(ctx, p.ID, p)
}

func (r *paymentRepository) List(ctx context.Context, organizationID string) ([]*payment.Payment, error) {
	return r.coll.Find(ctx, store.Filter{"organization_id": organizationID}, newestFirst())
}

func (r *paymentRepository) ListPending(ctx context.Context, organizationID string) ([]*payment.Payment, error) {
	return r.coll.Find(ctx, store.Filter{
		"organization_id": organizationID,
		"payment_status":  types.PaymentStatusPending,
	}, newestFirst())
}

func (r *paymentRepository) GetByProviderReference(ctx context.Context, provider types.PaymentProvider, reference string) (*payment.Payment, error) {
	return r.coll.FindOne(ctx, store.Filter{
		"provider":           provider,
		"provider_reference": reference,
	})
}
