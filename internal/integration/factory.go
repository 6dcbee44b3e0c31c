package integration

import (
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
)

// Factory resolves the gateway of a provider
type Factory struct {
	gateways map[types.PaymentProvider]Gateway
}

// NewFactory registers the given gateways by provider
func NewFactory(gateways ...Gateway) *Factory {
	f := &Factory{gateways: make(map[types.PaymentProvider]Gateway, len(gateways))}
	for _, g := range gateways {
		f.gateways[g.Provider()] = g
	}
	return f
}

// Get returns the gateway of provider
func (f *Factory) Get(provider types.PaymentProvider) (Gateway, error) {
	if err := provider.Validate(); err != nil {
		return nil, err
	}
	g, ok := f.gateways[provider]
	if !ok {
		return nil, ierr.NewError("payment provider not configured").
			WithHintf("%s payments are not available right now", provider).
			WithReportableDetails(map[string]any{"provider": provider}).
			Mark(ierr.ErrInvalidOperation)
	}
	return g, nil
}
