package payment

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Repository defines the interface for payment persistence
type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// Update fails with ErrInvalidOperation when the stored payment is completed
	Update(ctx context.Context, payment *Payment) error
	List(ctx context.Context, organizationID string) ([]*Payment, error)
	GetByProviderReference(ctx context.Context, provider types.PaymentProvider, reference string) (*Payment, error)
	ListPending(ctx context.Context, organizationID string) ([]*Payment, error)
}
