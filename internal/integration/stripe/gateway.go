// Package stripe collects card payments through Stripe Checkout
package stripe

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	eventCheckoutCompleted     = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	eventAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	eventCheckoutExpired       = "checkout.session.expired"

	metadataPaymentID      = "payment_id"
	metadataOrganizationID = "organization_id"
)

type sessionCreator func(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)

// Gateway creates hosted checkout sessions and verifies their webhooks
type Gateway struct {
	cfg           config.StripeConfig
	log           *logger.Logger
	createSession sessionCreator
}

var (
	_ integration.Gateway         = (*Gateway)(nil)
	_ integration.WebhookVerifier = (*Gateway)(nil)
)

func NewGateway(cfg *config.Configuration, log *logger.Logger) *Gateway {
	client := stripe.NewClient(cfg.Stripe.SecretKey, nil)
	return &Gateway{
		cfg: cfg.Stripe,
		log: log,
		createSession: func(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
			return client.V1CheckoutSessions.Create(ctx, params)
		},
	}
}

func (g *Gateway) Provider() types.PaymentProvider {
	return types.PaymentProviderStripe
}

func (g *Gateway) Initiate(ctx context.Context, req *integration.InitiateRequest) (*integration.InitiateResult, error) {
	metadata := map[string]string{
		metadataPaymentID:      req.PaymentID,
		metadataOrganizationID: req.OrganizationID,
		"plan":                 string(req.Plan),
		"account_reference":    req.AccountReference,
	}

	params := &stripe.CheckoutSessionCreateParams{
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(strings.ToLower(req.Currency)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String("AfyaStaff " + req.PlanName),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.PaymentID),
		SuccessURL:        stripe.String(g.cfg.SuccessURL),
		CancelURL:         stripe.String(g.cfg.CancelURL),
		Metadata:          metadata,
		PaymentIntentData: &stripe.CheckoutSessionCreatePaymentIntentDataParams{
			Metadata: metadata,
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}

	session, err := g.createSession(ctx, params)
	if err != nil {
		g.log.Errorw("failed to create stripe checkout session",
			"error", err,
			"payment_id", req.PaymentID)
		return nil, classify(err, req.PaymentID)
	}

	g.log.Infow("stripe checkout session created",
		"payment_id", req.PaymentID,
		"organization_id", req.OrganizationID,
		"session_id", session.ID)

	return &integration.InitiateResult{
		ProviderReference: session.ID,
		PaymentLink:       session.URL,
		Message:           "Complete the card payment on the Stripe checkout page",
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and maps checkout events to a confirmation
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*integration.Confirmation, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		g.log.Errorw("stripe webhook verification failed", "error", err)
		return nil, ierr.NewError("failed to verify webhook signature").
			WithHint("Invalid webhook signature or payload").
			Mark(ierr.ErrPermissionDenied)
	}

	confirmation := &integration.Confirmation{
		Provider: types.PaymentProviderStripe,
		Outcome:  integration.OutcomeIgnored,
	}

	eventType := string(event.Type)
	if !strings.HasPrefix(eventType, "checkout.session.") {
		return confirmation, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid checkout session payload").
			Mark(ierr.ErrValidation)
	}

	confirmation.ProviderReference = session.ID
	confirmation.AmountCents = session.AmountTotal
	confirmation.PaymentID = session.ClientReferenceID
	if confirmation.PaymentID == "" && session.Metadata != nil {
		confirmation.PaymentID = session.Metadata[metadataPaymentID]
	}
	if session.PaymentIntent != nil {
		confirmation.Receipt = session.PaymentIntent.ID
	}

	switch eventType {
	case eventCheckoutCompleted:
		// delayed methods settle later through async_payment_succeeded
		if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			confirmation.Outcome = integration.OutcomeSucceeded
		}
	case eventAsyncPaymentSucceeded:
		confirmation.Outcome = integration.OutcomeSucceeded
	case eventAsyncPaymentFailed:
		confirmation.Outcome = integration.OutcomeFailed
		confirmation.Message = "card payment failed"
	case eventCheckoutExpired:
		confirmation.Outcome = integration.OutcomeCancelled
		confirmation.Message = "checkout session expired"
	}

	g.log.Debugw("parsed stripe webhook",
		"event_id", event.ID,
		"event_type", eventType,
		"outcome", confirmation.Outcome)
	return confirmation, nil
}

func classify(err error, paymentID string) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		hint := stripeErr.Msg
		if hint == "" {
			hint = "Stripe rejected the payment request"
		}
		if stripeErr.HTTPStatusCode >= 500 {
			return ierr.WithError(err).
				WithHint("Stripe is temporarily unavailable, please try again").
				Mark(ierr.ErrTransient)
		}
		return ierr.WithError(err).
			WithHint(hint).
			WithReportableDetails(map[string]any{
				"payment_id": paymentID,
				"code":       string(stripeErr.Code),
			}).
			Mark(ierr.ErrProvider)
	}
	return ierr.WithError(err).
		WithHint("Could not reach Stripe, please try again").
		Mark(ierr.ErrTransient)
}
