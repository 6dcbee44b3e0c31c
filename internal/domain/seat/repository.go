package seat

import "context"

type Repository interface {
	// Get returns the ledger of an organization, creating an empty one if missing
	Get(ctx context.Context, organizationID string) (*Ledger, error)
	// Swap stores next only while the stored version equals expectedVersion
	Swap(ctx context.Context, expectedVersion int64, next *Ledger) error
}
