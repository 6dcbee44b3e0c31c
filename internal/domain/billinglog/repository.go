package billinglog

import "context"

// Repository appends and lists billing logs. There is no update.
type Repository interface {
	Create(ctx context.Context, log *BillingLog) error
	List(ctx context.Context, organizationID string) ([]*BillingLog, error)
}
