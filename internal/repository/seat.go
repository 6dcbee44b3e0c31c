package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/seat"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
)

type seatRepository struct {
	coll *store.Collection[seat.Ledger]
	log  *logger.Logger
}

func (r *seatRepository) Get(ctx context.Context, organizationID string) (*seat.Ledger, error) {
	if err := inScope(ctx, r.coll.Name(), organizationID, organizationID); err != nil {
		return nil, err
	}

	ledger, err := r.coll.Get(ctx, organizationID)
	if err == nil {
		return ledger, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	ledger = &seat.Ledger{ID: organizationID, OrganizationID: organizationID, Holders: []string{}}
	if err := r.coll.Insert(ctx, ledger.ID, ledger); err != nil {
		if ierr.IsAlreadyExists(err) {
			return r.coll.Get(ctx, organizationID)
		}
		return nil, err
	}
	return ledger, nil
}

func (r *seatRepository) Swap(ctx context.Context, expectedVersion int64, next *seat.Ledger) error {
	r.log.Debugw("swapping seat ledger",
		"organization_id", next.OrganizationID,
		"expected_version", expectedVersion,
		"holders", len(next.Holders),
	)
	return r.coll.CompareAndSwap(ctx, next.ID, expectedVersion, next)
}
