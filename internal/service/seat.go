package service

import (
	"context"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/seat"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/cenkalti/backoff/v4"
)

const (
	seatRetryInitialInterval = 10 * time.Millisecond
	seatRetryMaxInterval     = 200 * time.Millisecond
	seatRetryMaxAttempts     = 8
)

// reserveSeat rejects the promotion when every admin seat is in use, then
// claims one on the seat ledger. Nothing is written when it fails.
func (p ServiceParams) reserveSeat(ctx context.Context, organizationID, staffID string) error {
	seats, err := NewUsageService(p).CheckAdminSeatAvailability(ctx, organizationID)
	if err != nil {
		return err
	}
	if !seats.Available {
		return limitReached("admin seats", seats, ierr.ErrSeatLimitExceeded)
	}
	return p.claimSeat(ctx, organizationID, staffID, seats.Max)
}

// claimSeat adds staffID to the ledger with a compare-and-swap, retrying
// lost races with exponential backoff. The ledger itself enforces maxSeats.
func (p ServiceParams) claimSeat(ctx context.Context, organizationID, staffID string, maxSeats int) error {
	op := func() error {
		ledger, err := p.SeatRepo.Get(ctx, organizationID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if ledger.Holds(staffID) {
			return nil
		}
		if len(ledger.Holders) >= maxSeats {
			return backoff.Permanent(limitReached("admin seats",
				dto.NewLimitUsage(len(ledger.Holders), maxSeats), ierr.ErrSeatLimitExceeded))
		}
		return p.swapLedger(ctx, ledger.Version, ledger.Claim(staffID))
	}
	return p.retrySeatOp(ctx, op, organizationID, staffID)
}

// releaseSeat removes staffID from the ledger, a no-op when it holds none
func (p ServiceParams) releaseSeat(ctx context.Context, organizationID, staffID string) error {
	op := func() error {
		ledger, err := p.SeatRepo.Get(ctx, organizationID)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ledger.Holds(staffID) {
			return nil
		}
		return p.swapLedger(ctx, ledger.Version, ledger.Release(staffID))
	}
	return p.retrySeatOp(ctx, op, organizationID, staffID)
}

func (p ServiceParams) swapLedger(ctx context.Context, expectedVersion int64, next *seat.Ledger) error {
	err := p.SeatRepo.Swap(ctx, expectedVersion, next)
	if err == nil {
		return nil
	}
	if ierr.IsVersionConflict(err) {
		p.Metrics.SeatConflictsTotal.Inc()
		return err
	}
	return backoff.Permanent(err)
}

func (p ServiceParams) retrySeatOp(ctx context.Context, op backoff.Operation, organizationID, staffID string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = seatRetryInitialInterval
	b.MaxInterval = seatRetryMaxInterval

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, seatRetryMaxAttempts), ctx))
	if err != nil && ierr.IsVersionConflict(err) {
		p.Logger.Errorw("seat ledger stayed contended",
			"organization_id", organizationID,
			"staff_id", staffID)
		return ierr.WithError(err).
			WithHint("Another change to admin seats is in progress. Please try again.").
			Mark(ierr.ErrTransient)
	}
	return err
}
