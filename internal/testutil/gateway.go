package testutil

import (
	"context"
	"sync"

	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/types"
)

// FakeGateway records initiations and answers with a canned result or error
type FakeGateway struct {
	mu       sync.Mutex
	provider types.PaymentProvider
	calls    []*integration.InitiateRequest

	Result *integration.InitiateResult
	Err    error
	// Webhook is returned by ParseWebhook unless WebhookErr is set
	Webhook    *integration.Confirmation
	WebhookErr error
}

var (
	_ integration.Gateway         = (*FakeGateway)(nil)
	_ integration.WebhookVerifier = (*FakeGateway)(nil)
)

func NewFakeGateway(provider types.PaymentProvider) *FakeGateway {
	return &FakeGateway{
		provider: provider,
		Result: &integration.InitiateResult{
			ProviderReference: string(provider) + "_ref_" + types.GenerateUUID(),
			Message:           "request sent",
		},
	}
}

func (g *FakeGateway) Provider() types.PaymentProvider {
	return g.provider
}

func (g *FakeGateway) Initiate(_ context.Context, req *integration.InitiateRequest) (*integration.InitiateResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.Err != nil {
		return nil, g.Err
	}
	result := *g.Result
	return &result, nil
}

func (g *FakeGateway) ParseWebhook(_ []byte, _ string) (*integration.Confirmation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.WebhookErr != nil {
		return nil, g.WebhookErr
	}
	if g.Webhook == nil {
		return &integration.Confirmation{Provider: g.provider, Outcome: integration.OutcomeIgnored}, nil
	}
	c := *g.Webhook
	return &c, nil
}

// Calls returns the requests received so far
func (g *FakeGateway) Calls() []*integration.InitiateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*integration.InitiateRequest{}, g.calls...)
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = nil
	g.Err = nil
	g.Webhook = nil
	g.WebhookErr = nil
}
