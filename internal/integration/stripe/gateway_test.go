package stripe

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testSecret = "whsec_test"

func newTestGateway(create sessionCreator) *Gateway {
	cfg := config.GetDefaultConfig()
	cfg.Stripe.SecretKey = "sk_test"
	cfg.Stripe.WebhookSecret = testSecret
	cfg.Stripe.SuccessURL = "https://app.example.com/billing/success"
	cfg.Stripe.CancelURL = "https://app.example.com/billing"
	g := NewGateway(cfg, logger.NewNoopLogger())
	if create != nil {
		g.createSession = create
	}
	return g
}

func signed(t *testing.T, payload string) ([]byte, string) {
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testSecret,
		Timestamp: time.Now(),
	})
	require.NotNil(t, sp)
	return sp.Payload, sp.Header
}

func sessionEvent(eventType, paymentStatus string) string {
	return fmt.Sprintf(`{"id":"evt_1","object":"event","type":%q,"data":{"object":{"id":"cs_test_1","object":"checkout.session","client_reference_id":"pay_1","payment_status":%q,"amount_total":750000,"payment_intent":"pi_1","metadata":{"payment_id":"pay_1"}}}}`, eventType, paymentStatus)
}

func TestInitiate_CreatesCheckoutSession(t *testing.T) {
	var got *stripe.CheckoutSessionCreateParams
	g := newTestGateway(func(_ context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
		got = params
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil
	})

	res, err := g.Initiate(context.Background(), &integration.InitiateRequest{
		PaymentID:      "pay_1",
		OrganizationID: "org_1",
		Plan:           "professional",
		PlanName:       "Professional",
		AmountCents:    750000,
		Currency:       "KES",
		Email:          "owner@clinic.co.ke",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", res.ProviderReference)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_test_1", res.PaymentLink)

	require.NotNil(t, got)
	assert.Equal(t, "pay_1", *got.ClientReferenceID)
	assert.Equal(t, "owner@clinic.co.ke", *got.CustomerEmail)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(750000), *got.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "kes", *got.LineItems[0].PriceData.Currency)
	assert.Equal(t, "org_1", got.Metadata["organization_id"])
}

func TestInitiate_ErrorClassification(t *testing.T) {
	g := newTestGateway(func(context.Context, *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
		return nil, &stripe.Error{HTTPStatusCode: http.StatusBadRequest, Msg: "Invalid currency"}
	})
	_, err := g.Initiate(context.Background(), &integration.InitiateRequest{PaymentID: "pay_1", Currency: "KES"})
	assert.True(t, ierr.IsProvider(err))

	g = newTestGateway(func(context.Context, *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
		return nil, fmt.Errorf("dial tcp: connection refused")
	})
	_, err = g.Initiate(context.Background(), &integration.InitiateRequest{PaymentID: "pay_1", Currency: "KES"})
	assert.True(t, ierr.IsTransient(err))
}

func TestParseWebhook(t *testing.T) {
	tests := []struct {
		name          string
		eventType     string
		paymentStatus string
		outcome       integration.Outcome
	}{
		{"completed and paid", eventCheckoutCompleted, "paid", integration.OutcomeSucceeded},
		{"completed but unpaid", eventCheckoutCompleted, "unpaid", integration.OutcomeIgnored},
		{"async success", eventAsyncPaymentSucceeded, "paid", integration.OutcomeSucceeded},
		{"async failure", eventAsyncPaymentFailed, "unpaid", integration.OutcomeFailed},
		{"expired", eventCheckoutExpired, "unpaid", integration.OutcomeCancelled},
	}

	g := newTestGateway(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, sig := signed(t, sessionEvent(tt.eventType, tt.paymentStatus))
			c, err := g.ParseWebhook(payload, sig)
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, c.Outcome)
			assert.Equal(t, "pay_1", c.PaymentID)
			assert.Equal(t, "cs_test_1", c.ProviderReference)
			assert.Equal(t, "pi_1", c.Receipt)
			assert.Equal(t, int64(750000), c.AmountCents)
		})
	}
}

func TestParseWebhook_UnrelatedEventIgnored(t *testing.T) {
	g := newTestGateway(nil)
	payload, sig := signed(t, `{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)
	c, err := g.ParseWebhook(payload, sig)
	require.NoError(t, err)
	assert.Equal(t, integration.OutcomeIgnored, c.Outcome)
}

func TestParseWebhook_BadSignature(t *testing.T) {
	g := newTestGateway(nil)
	payload, _ := signed(t, sessionEvent(eventCheckoutCompleted, "paid"))
	_, err := g.ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.True(t, ierr.IsPermissionDenied(err))
}
