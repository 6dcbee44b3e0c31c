package types

import (
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/samber/lo"
)

// BillingState governs access to the application
type BillingState string

const (
	BillingStateTrial     BillingState = "TRIAL"
	BillingStateActive    BillingState = "ACTIVE"
	BillingStateSuspended BillingState = "SUSPENDED"
)

func (s BillingState) String() string {
	return string(s)
}

func (s BillingState) Validate() error {
	allowed := []BillingState{
		BillingStateTrial,
		BillingStateActive,
		BillingStateSuspended,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid billing state").
			WithHint("Billing state must be TRIAL, ACTIVE or SUSPENDED").
			WithReportableDetails(map[string]any{"billing_state": s}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMode decides whether renewals are pushed automatically
type PaymentMode string

const (
	PaymentModeAutoPay    PaymentMode = "AUTO_PAY"
	PaymentModePayAsYouGo PaymentMode = "PAY_AS_YOU_GO"
)

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) Validate() error {
	allowed := []PaymentMode{
		PaymentModeAutoPay,
		PaymentModePayAsYouGo,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment mode").
			WithHint("Payment mode must be AUTO_PAY or PAY_AS_YOU_GO").
			WithReportableDetails(map[string]any{"payment_mode": m}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SuspensionReason explains why an organization lost access
type SuspensionReason string

const (
	SuspensionReasonNone           SuspensionReason = ""
	SuspensionReasonTrialExpired   SuspensionReason = "trial_expired"
	SuspensionReasonPaymentOverdue SuspensionReason = "payment_overdue"
	SuspensionReasonManual         SuspensionReason = "manual"
)

// BillingEvent is the kind of a billing log entry
type BillingEvent string

const (
	BillingEventTrialStart      BillingEvent = "TRIAL_START"
	BillingEventPaymentReceived BillingEvent = "PAYMENT_RECEIVED"
	BillingEventSuspension      BillingEvent = "SUSPENSION"
	BillingEventReactivation    BillingEvent = "REACTIVATION"
	BillingEventPlanChange      BillingEvent = "PLAN_CHANGE"
)

// PlanID identifies a subscription tier
type PlanID string

const (
	PlanStarter      PlanID = "starter"
	PlanProfessional PlanID = "professional"
	PlanEnterprise   PlanID = "enterprise"
)

func (p PlanID) String() string {
	return string(p)
}

func (p PlanID) Validate() error {
	allowed := []PlanID{
		PlanStarter,
		PlanProfessional,
		PlanEnterprise,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid plan").
			WithHint("Plan must be starter, professional or enterprise").
			WithReportableDetails(map[string]any{"plan": p}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
