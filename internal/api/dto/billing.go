package dto

import (
	"github.com/afyastaff/afyastaff/internal/domain/billinglog"
	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

type PlanInfo struct {
	ID           types.PlanID `json:"id"`
	Name         string       `json:"name"`
	PriceCents   int64        `json:"price_cents"`
	Currency     string       `json:"currency"`
	MaxLocations int          `json:"max_locations"`
	MaxStaff     int          `json:"max_staff"`
	MaxAdmins    int          `json:"max_admins"`
}

type BillingStatusResponse struct {
	Subscription *subscription.Subscription `json:"subscription,omitempty"`
	Evaluation   subscription.Evaluation    `json:"evaluation"`
	Plan         PlanInfo                   `json:"plan"`
	Plans        []PlanInfo                 `json:"plans"`
	SupportEmail string                     `json:"support_email"`
	DevMode      bool                       `json:"dev_mode"`
	// Degraded is set when the subscription could not be read and a default trial is shown
	Degraded bool `json:"degraded,omitempty"`
}

type SetPaymentModeRequest struct {
	PaymentMode  types.PaymentMode `json:"payment_mode" validate:"required"`
	AutoPayPhone string            `json:"auto_pay_phone,omitempty"`
}

func (r *SetPaymentModeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.PaymentMode.Validate(); err != nil {
		return err
	}
	if r.PaymentMode == types.PaymentModeAutoPay {
		phone, err := types.NormalizePhone(r.AutoPayPhone)
		if err != nil {
			return err
		}
		r.AutoPayPhone = phone
	}
	return nil
}

type ChangePlanRequest struct {
	Plan types.PlanID `json:"plan" validate:"required"`
}

func (r *ChangePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Plan.Validate()
}

type SimulatePaymentRequest struct {
	Plan types.PlanID `json:"plan,omitempty"`
}

func (r *SimulatePaymentRequest) Validate() error {
	if r.Plan == "" {
		return nil
	}
	return r.Plan.Validate()
}

type ReactivateRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (r *ReactivateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ListBillingLogsResponse = types.ListResponse[*billinglog.BillingLog]

// ReconcileResponse summarizes one reconciliation run
type ReconcileResponse struct {
	Checked   int      `json:"checked"`
	Suspended []string `json:"suspended"`
}

// AutoPayResponse summarizes one renewal run
type AutoPayResponse struct {
	Checked   int      `json:"checked"`
	Initiated []string `json:"initiated"`
	Failed    []string `json:"failed"`
}
