package subscription

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Subscription is the single billing record of an organization.
// Its ID is the organization ID.
type Subscription struct {
	ID                  string                 `bson:"_id" json:"id"`
	Plan                types.PlanID           `bson:"plan" json:"plan"`
	BillingState        types.BillingState     `bson:"billing_state" json:"billing_state"`
	PaymentMode         types.PaymentMode      `bson:"payment_mode" json:"payment_mode"`
	AmountCents         int64                  `bson:"amount_cents" json:"amount_cents"`
	Currency            string                 `bson:"currency" json:"currency"`
	BillingCycleDays    int                    `bson:"billing_cycle_days" json:"billing_cycle_days"`
	TrialDays           int                    `bson:"trial_days" json:"trial_days"`
	TrialStartedAt      time.Time              `bson:"trial_started_at" json:"trial_started_at"`
	TrialEndsAt         *time.Time             `bson:"trial_ends_at" json:"trial_ends_at"`
	CurrentPeriodStart  *time.Time             `bson:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd    *time.Time             `bson:"current_period_end" json:"current_period_end"`
	NextBillingDate     *time.Time             `bson:"next_billing_date" json:"next_billing_date"`
	AutoPayEnabled      bool                   `bson:"auto_pay_enabled" json:"auto_pay_enabled"`
	AutoPayPhone        string                 `bson:"auto_pay_phone" json:"auto_pay_phone,omitempty"`
	LastPaymentDate     *time.Time             `bson:"last_payment_date" json:"last_payment_date"`
	LastPaymentProvider types.PaymentProvider  `bson:"last_payment_provider" json:"last_payment_provider,omitempty"`
	LastPaymentID       string                 `bson:"last_payment_id" json:"last_payment_id,omitempty"`
	SuspendedAt         *time.Time             `bson:"suspended_at" json:"suspended_at"`
	SuspensionReason    types.SuspensionReason `bson:"suspension_reason" json:"suspension_reason,omitempty"`
	ReactivatedAt       *time.Time             `bson:"reactivated_at" json:"reactivated_at"`
	CancelledAt         *time.Time             `bson:"cancelled_at" json:"cancelled_at"`
	Version             int64                  `bson:"version" json:"-"`

	types.BaseModel `bson:",inline"`
}

// HasPaid reports whether a payment has ever completed for the subscription
func (s *Subscription) HasPaid() bool {
	return s.LastPaymentDate != nil
}

// Suspend persists a suspension
func (s *Subscription) Suspend(at time.Time, reason types.SuspensionReason) {
	s.BillingState = types.BillingStateSuspended
	s.SuspendedAt = &at
	s.SuspensionReason = reason
}

// Activate starts a new paid billing period at the given time
func (s *Subscription) Activate(at time.Time, provider types.PaymentProvider, paymentID string) {
	end := at.AddDate(0, 0, s.BillingCycleDays)
	wasSuspended := s.BillingState == types.BillingStateSuspended

	s.BillingState = types.BillingStateActive
	s.CurrentPeriodStart = &at
	s.CurrentPeriodEnd = &end
	s.NextBillingDate = &end
	s.LastPaymentDate = &at
	s.LastPaymentProvider = provider
	s.LastPaymentID = paymentID
	s.SuspendedAt = nil
	s.SuspensionReason = types.SuspensionReasonNone
	if wasSuspended {
		s.ReactivatedAt = &at
	}
}
