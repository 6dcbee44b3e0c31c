package dto

import (
	"strings"

	"github.com/afyastaff/afyastaff/internal/domain/payment"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

type InitiatePaymentRequest struct {
	Provider types.PaymentProvider `json:"provider"`
	Phone    string                `json:"phone,omitempty"`
	Email    string                `json:"email,omitempty"`
	Plan     types.PlanID          `json:"plan,omitempty"`
}

// Validate checks the contact details the provider needs and normalizes the phone
func (r *InitiatePaymentRequest) Validate() error {
	if err := r.Provider.Validate(); err != nil {
		return err
	}
	if r.Plan != "" {
		if err := r.Plan.Validate(); err != nil {
			return err
		}
	}

	switch r.Provider {
	case types.PaymentProviderMpesa:
		phone, err := types.NormalizePhone(r.Phone)
		if err != nil {
			return err
		}
		r.Phone = phone
	case types.PaymentProviderStripe:
		r.Email = strings.ToLower(strings.TrimSpace(r.Email))
		if err := types.ValidateEmail(r.Email); err != nil {
			return ierr.WithError(err).
				WithHint("Please enter a valid email address").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type InitiatePaymentResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	PaymentID         string `json:"payment_id"`
	ProviderReference string `json:"provider_reference,omitempty"`
	PaymentLink       string `json:"payment_link,omitempty"`
}

type ListPaymentsResponse = types.ListResponse[*payment.Payment]
