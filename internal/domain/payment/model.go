package payment

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Payment is one payment attempt. A COMPLETED payment is immutable.
type Payment struct {
	ID                string                `bson:"_id" json:"id"`
	SubscriptionID    string                `bson:"subscription_id" json:"subscription_id"`
	Plan              types.PlanID          `bson:"plan" json:"plan"`
	AmountCents       int64                 `bson:"amount_cents" json:"amount_cents"`
	Currency          string                `bson:"currency" json:"currency"`
	Provider          types.PaymentProvider `bson:"provider" json:"provider"`
	ProviderReference string                `bson:"provider_reference" json:"provider_reference,omitempty"`
	ProviderReceipt   string                `bson:"provider_receipt" json:"provider_receipt,omitempty"`
	CheckoutURL       string                `bson:"checkout_url" json:"checkout_url,omitempty"`
	AccountReference  string                `bson:"account_reference" json:"account_reference"`
	Phone             string                `bson:"phone" json:"phone,omitempty"`
	Email             string                `bson:"email" json:"email,omitempty"`
	PaymentStatus     types.PaymentStatus   `bson:"payment_status" json:"payment_status"`
	FailureMessage    string                `bson:"failure_message" json:"failure_message,omitempty"`
	IdempotencyKey    string                `bson:"idempotency_key" json:"-"`
	PaidAt            *time.Time            `bson:"paid_at" json:"paid_at,omitempty"`
	FailedAt          *time.Time            `bson:"failed_at" json:"failed_at,omitempty"`

	types.BaseModel `bson:",inline"`
}

// IsCompleted reports whether the payment settled
func (p *Payment) IsCompleted() bool {
	return p.PaymentStatus == types.PaymentStatusCompleted
}
