package subscription

import (
	"math"
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// Policy holds the configured billing windows used by Evaluate
type Policy struct {
	TrialDays          int
	TrialGracePeriod   time.Duration
	PaymentGracePeriod time.Duration
}

// Evaluation is the effective billing state of a subscription at a point in time
type Evaluation struct {
	State            types.BillingState     `json:"state"`
	DaysRemaining    int                    `json:"days_remaining"`
	IsTrialExpired   bool                   `json:"is_trial_expired"`
	IsPaymentDue     bool                   `json:"is_payment_due"`
	SuspensionReason types.SuspensionReason `json:"suspension_reason,omitempty"`
	// WindowEndsAt is the end of the trial or the current paid period
	WindowEndsAt *time.Time `json:"window_ends_at,omitempty"`
}

// Evaluate computes the effective billing state of sub at now.
// It never mutates sub and never fails.
func Evaluate(sub *Subscription, now time.Time, policy Policy) Evaluation {
	if sub.BillingState == types.BillingStateSuspended {
		reason := sub.SuspensionReason
		if reason == types.SuspensionReasonNone {
			reason = types.SuspensionReasonManual
		}
		return Evaluation{
			State:            types.BillingStateSuspended,
			IsTrialExpired:   !sub.HasPaid(),
			IsPaymentDue:     true,
			SuspensionReason: reason,
		}
	}

	if !sub.HasPaid() {
		return evaluateTrial(sub, now, policy)
	}
	return evaluatePaid(sub, now, policy)
}

func evaluateTrial(sub *Subscription, now time.Time, policy Policy) Evaluation {
	start := sub.TrialStartedAt
	end := trialEnd(sub, policy)
	eval := Evaluation{WindowEndsAt: &end}

	if now.Before(end) {
		eval.State = types.BillingStateTrial
		eval.DaysRemaining = daysRemaining(start, end, now)
		return eval
	}

	eval.IsTrialExpired = true
	eval.IsPaymentDue = true
	if now.Before(end.Add(policy.TrialGracePeriod)) {
		eval.State = types.BillingStateTrial
		return eval
	}
	eval.State = types.BillingStateSuspended
	eval.SuspensionReason = types.SuspensionReasonTrialExpired
	return eval
}

func evaluatePaid(sub *Subscription, now time.Time, policy Policy) Evaluation {
	eval := Evaluation{State: types.BillingStateActive}
	if sub.CurrentPeriodEnd == nil {
		// paid without a recorded period, treat as due
		eval.IsPaymentDue = true
		return applyOverdue(sub, eval, now, now, policy)
	}

	end := *sub.CurrentPeriodEnd
	eval.WindowEndsAt = &end

	start := end
	if sub.CurrentPeriodStart != nil {
		start = *sub.CurrentPeriodStart
	}

	if now.Before(end) {
		eval.DaysRemaining = daysRemaining(start, end, now)
		eval.IsPaymentDue = eval.DaysRemaining <= 0
		return eval
	}

	eval.IsPaymentDue = true
	return applyOverdue(sub, eval, end, now, policy)
}

func applyOverdue(sub *Subscription, eval Evaluation, dueAt, now time.Time, policy Policy) Evaluation {
	if sub.AutoPayEnabled {
		return eval
	}
	if now.Before(dueAt.Add(policy.PaymentGracePeriod)) {
		return eval
	}
	eval.State = types.BillingStateSuspended
	eval.SuspensionReason = types.SuspensionReasonPaymentOverdue
	return eval
}

func trialEnd(sub *Subscription, policy Policy) time.Time {
	if sub.TrialEndsAt != nil {
		return *sub.TrialEndsAt
	}
	days := sub.TrialDays
	if days <= 0 {
		days = policy.TrialDays
	}
	return sub.TrialStartedAt.AddDate(0, 0, days)
}

// daysRemaining is the whole days left in [start, end) rounded up.
// A window ending before it starts has no days left.
func daysRemaining(start, end, now time.Time) int {
	if end.Before(start) {
		return 0
	}
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}
