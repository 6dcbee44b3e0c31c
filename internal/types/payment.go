package types

import (
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/samber/lo"
)

// PaymentStatus represents the status of a payment attempt
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// IsFinal reports whether no further provider confirmation can change the status
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentStatusCompleted
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid payment status").
			WithReportableDetails(map[string]any{"payment_status": s}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentProvider is the external service settling a payment
type PaymentProvider string

const (
	PaymentProviderMpesa     PaymentProvider = "mpesa"
	PaymentProviderStripe    PaymentProvider = "stripe"
	PaymentProviderSimulated PaymentProvider = "simulated"
)

func (p PaymentProvider) String() string {
	return string(p)
}

// Validate accepts only providers a caller may initiate through
func (p PaymentProvider) Validate() error {
	allowed := []PaymentProvider{
		PaymentProviderMpesa,
		PaymentProviderStripe,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid payment provider").
			WithHint("Choose M-Pesa or card payment").
			WithReportableDetails(map[string]any{"provider": p}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
