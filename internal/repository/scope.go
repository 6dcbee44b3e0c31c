package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

// inScope hides documents of other organizations from a scoped caller.
// Webhooks and cron jobs run without an organization and see everything.
func inScope(ctx context.Context, collection, id, organizationID string) error {
	scoped := types.GetOrganizationID(ctx)
	if scoped != "" && scoped != organizationID {
		return store.NotFound(collection, id)
	}
	return nil
}

func newestFirst() *store.FindOptions {
	return &store.FindOptions{SortBy: "created_at", Descending: true}
}

func oldestFirst() *store.FindOptions {
	return &store.FindOptions{SortBy: "created_at"}
}
