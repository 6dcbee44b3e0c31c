package payroll

import "context"

type Repository interface {
	// Upsert replaces the entry of the same id, so a rerun of a period overwrites it
	Upsert(ctx context.Context, e *Entry) error
	List(ctx context.Context, organizationID, period string) ([]*Entry, error)
}
