package mpesa

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/types"
)

// ParseCallback turns an STK push callback into a provider-neutral confirmation.
// The payment is matched on CheckoutRequestID, which Initiate returned as the provider reference.
func ParseCallback(body []byte) (*integration.Confirmation, error) {
	var cb Callback
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid M-Pesa callback payload").
			Mark(ierr.ErrValidation)
	}

	stk := cb.Body.StkCallback
	if stk.CheckoutRequestID == "" {
		return nil, ierr.NewError("missing checkout request id").
			WithHint("Invalid M-Pesa callback payload").
			Mark(ierr.ErrValidation)
	}

	confirmation := &integration.Confirmation{
		Provider:          types.PaymentProviderMpesa,
		ProviderReference: stk.CheckoutRequestID,
		Message:           stk.ResultDesc,
	}

	switch stk.ResultCode {
	case ResultCodeSuccess:
		confirmation.Outcome = integration.OutcomeSucceeded
		confirmation.Receipt = stk.metadataString("MpesaReceiptNumber")
		confirmation.AmountCents = stk.amountCents()
	case ResultCodeCancelled:
		confirmation.Outcome = integration.OutcomeCancelled
	default:
		confirmation.Outcome = integration.OutcomeFailed
	}
	return confirmation, nil
}

// amountCents converts the whole shilling Amount item, zero when it is missing
func (s StkCallback) amountCents() int64 {
	if s.CallbackMetadata == nil {
		return 0
	}
	for _, item := range s.CallbackMetadata.Item {
		if item.Name != "Amount" {
			continue
		}
		switch v := item.Value.(type) {
		case float64:
			return int64(math.Round(v * 100))
		case string:
			shillings, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0
			}
			return int64(math.Round(shillings * 100))
		}
	}
	return 0
}

func (s StkCallback) metadataString(name string) string {
	if s.CallbackMetadata == nil {
		return ""
	}
	for _, item := range s.CallbackMetadata.Item {
		if item.Name != name || item.Value == nil {
			continue
		}
		switch v := item.Value.(type) {
		case string:
			return v
		case float64:
			return fmt.Sprintf("%.0f", v)
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}
