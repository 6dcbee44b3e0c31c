package subscription

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Repository persists subscriptions. Updates follow last-write-wins.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	// Get returns the subscription of an organization
	Get(ctx context.Context, organizationID string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	// ListAll returns every subscription regardless of the caller's scope
	ListAll(ctx context.Context) ([]*Subscription, error)
	// ListByPaymentMode returns every subscription in the payment mode
	ListByPaymentMode(ctx context.Context, mode types.PaymentMode) ([]*Subscription, error)
}
