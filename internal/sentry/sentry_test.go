package sentry

import (
	"context"
	"errors"
	"testing"

	"github.com/afyastaff/afyastaff/internal/config"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDisabledServiceIsNoop(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Sentry.Enabled = false
	svc := NewSentryService(cfg, logger.NewNoopLogger())

	ctx := context.Background()
	assert.False(t, svc.Enabled())
	assert.NotPanics(t, func() {
		svc.CaptureException(ctx, errors.New("boom"))
		svc.AddBreadcrumb("billing", "payment", nil)
	})

	span, spanCtx := svc.StartProviderSpan(ctx, types.PaymentProviderMpesa, "initiate")
	assert.Nil(t, span)
	assert.Equal(t, ctx, spanCtx)
	FinishSpan(span)
}
