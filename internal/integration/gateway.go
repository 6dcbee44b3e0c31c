// Package integration abstracts the external payment providers
package integration

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/types"
)

// InitiateRequest asks a provider to start collecting a payment
type InitiateRequest struct {
	PaymentID        string
	OrganizationID   string
	AccountReference string
	Plan             types.PlanID
	PlanName         string
	AmountCents      int64
	Currency         string
	// Phone is the MSISDN for mobile money pushes
	Phone string
	// Email is the payer address for card checkouts
	Email string
}

// InitiateResult is the provider's acknowledgement. Settlement arrives later
// through a webhook.
type InitiateResult struct {
	ProviderReference string
	PaymentLink       string
	Message           string
}

// Gateway is implemented by every payment provider.
// Initiate fails with ErrProvider when the provider rejects the request and
// with ErrTransient when it cannot be reached.
type Gateway interface {
	Provider() types.PaymentProvider
	Initiate(ctx context.Context, req *InitiateRequest) (*InitiateResult, error)
}

// Outcome is the settlement result reported by a provider webhook
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
	// OutcomeIgnored marks webhook events that do not settle a payment
	OutcomeIgnored Outcome = "ignored"
)

// Confirmation is a parsed provider webhook
type Confirmation struct {
	Provider          types.PaymentProvider
	ProviderReference string
	// PaymentID is set when the provider echoes our own id back
	PaymentID string
	Receipt   string
	Outcome   Outcome
	Message   string
	// AmountCents is what the provider reports as collected
	AmountCents int64
}

// WebhookVerifier is implemented by gateways whose webhooks carry a signature
type WebhookVerifier interface {
	ParseWebhook(payload []byte, signature string) (*Confirmation, error)
}
