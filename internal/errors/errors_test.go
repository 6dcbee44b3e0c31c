package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"validation", NewError("bad phone").Mark(ErrValidation), KindValidation, http.StatusBadRequest},
		{"seat limit", NewError("no seats").Mark(ErrSeatLimitExceeded), KindSeatLimitExceeded, http.StatusConflict},
		{"provider", NewError("declined").Mark(ErrProvider), KindProvider, http.StatusPaymentRequired},
		{"transient", NewError("timeout").Mark(ErrTransient), KindTransient, http.StatusServiceUnavailable},
		{"not found", NewError("missing").Mark(ErrNotFound), KindNotFound, http.StatusNotFound},
		{"permission", NewError("nope").Mark(ErrPermissionDenied), KindPermission, http.StatusForbidden},
		{"unmarked", NewError("boom").Error(), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestSeatLimitIsValidation(t *testing.T) {
	err := NewError("admin seats exhausted").
		WithHint("All admin seats on your plan are in use").
		Mark(ErrSeatLimitExceeded)

	assert.True(t, IsValidation(err))
	assert.True(t, IsSeatLimitExceeded(err))
	assert.False(t, IsNotFound(err))
}

func TestDisplayMessage(t *testing.T) {
	err := NewError("stk push failed").
		WithHint("M-Pesa rejected the payment request").
		Mark(ErrProvider)
	assert.Equal(t, "M-Pesa rejected the payment request", DisplayMessage(err))

	assert.Equal(t, "boom", DisplayMessage(NewError("boom").Error()))
	assert.Empty(t, DisplayMessage(nil))
}

func TestReportableDetails(t *testing.T) {
	err := NewError("admin seats limit reached").
		WithOrganization("org_1").
		WithLimit("admin seats", 2, 2).
		WithDetail("max", 3).
		Mark(ErrSeatLimitExceeded)

	assert.Equal(t, map[string]any{
		"organization_id": "org_1",
		"resource":        "admin seats",
		"used":            float64(2),
		"max":             float64(3),
	}, ReportableDetails(err))
	assert.True(t, IsSeatLimitExceeded(err))
}

func TestReportableDetails_WrappedChain(t *testing.T) {
	cause := NewError("stk push rejected").
		WithDetail("provider", "mpesa").
		WithDetail("payment_id", "pay_root").
		Mark(ErrProvider)

	err := WithError(cause).
		WithDetail("payment_id", "pay_outer").
		Mark(ErrProvider)

	assert.Equal(t, map[string]any{
		"provider":   "mpesa",
		"payment_id": "pay_outer",
	}, ReportableDetails(err))
}

func TestReportableDetails_Empty(t *testing.T) {
	assert.Empty(t, ReportableDetails(NewError("boom").WithOrganization("").Error()))
	assert.Empty(t, ReportableDetails(nil))
}
