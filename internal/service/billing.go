package service

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/cache"
	"github.com/afyastaff/afyastaff/internal/domain/billinglog"
	"github.com/afyastaff/afyastaff/internal/domain/payment"
	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

// BillingService owns the subscription record of every organization.
// Every state transition it persists is written to the billing log.
type BillingService interface {
	StartTrial(ctx context.Context, organizationID string, plan types.PlanID) (*subscription.Subscription, error)
	GetBillingStatus(ctx context.Context) (*dto.BillingStatusResponse, error)
	CurrentEvaluation(ctx context.Context) (*subscription.Evaluation, error)
	SetPaymentMode(ctx context.Context, req dto.SetPaymentModeRequest) (*subscription.Subscription, error)
	ChangePlan(ctx context.Context, req dto.ChangePlanRequest) (*dto.BillingStatusResponse, error)
	ApplyPayment(ctx context.Context, p *payment.Payment) (*subscription.Subscription, error)
	SimulatePayment(ctx context.Context, req dto.SimulatePaymentRequest) (*dto.BillingStatusResponse, error)
	ResetTrial(ctx context.Context) (*dto.BillingStatusResponse, error)
	Reactivate(ctx context.Context, organizationID string, req dto.ReactivateRequest) (*subscription.Subscription, error)
	ReconcileStates(ctx context.Context) (*dto.ReconcileResponse, error)
	ListBillingLogs(ctx context.Context) (*dto.ListBillingLogsResponse, error)
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) StartTrial(ctx context.Context, organizationID string, plan types.PlanID) (*subscription.Subscription, error) {
	if plan == "" {
		plan = s.Config.Billing.DefaultPlan
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	planCfg, _ := s.Config.Billing.Plan(plan)

	now := s.Now()
	trialEnd := now.AddDate(0, 0, s.Config.Billing.TrialDays)
	base := types.GetDefaultBaseModel(ctx)
	base.OrganizationID = organizationID

	sub := &subscription.Subscription{
		ID:               organizationID,
		Plan:             plan,
		BillingState:     types.BillingStateTrial,
		PaymentMode:      types.PaymentModePayAsYouGo,
		AmountCents:      planCfg.PriceCents,
		Currency:         s.Config.Billing.Currency,
		BillingCycleDays: s.Config.Billing.BillingCycleDays,
		TrialDays:        s.Config.Billing.TrialDays,
		TrialStartedAt:   now,
		TrialEndsAt:      &trialEnd,
		BaseModel:        base,
	}
	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, &billinglog.BillingLog{
		OrganizationID: organizationID,
		SubscriptionID: sub.ID,
		Event:          types.BillingEventTrialStart,
		ToState:        types.BillingStateTrial,
		ToPlan:         plan,
	})
	return sub, nil
}

func (s *billingService) GetBillingStatus(ctx context.Context) (*dto.BillingStatusResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, orgID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, err
		}
		s.Logger.Errorw("failed to load subscription, showing default trial",
			"error", err,
			"organization_id", orgID)
		s.Sentry.CaptureException(ctx, err)
		return s.degradedStatus(), nil
	}

	return s.statusResponse(sub, subscription.Evaluate(sub, s.Now(), s.billingPolicy())), nil
}

// CurrentEvaluation is the cached read used by the access gate
func (s *billingService) CurrentEvaluation(ctx context.Context) (*subscription.Evaluation, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}

	key := cache.GenerateKey(cache.PrefixSubscription, orgID)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if sub, ok := cached.(subscription.Subscription); ok {
			eval := subscription.Evaluate(&sub, s.Now(), s.billingPolicy())
			return &eval, nil
		}
	}

	sub, err := s.SubRepo.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, *sub, 0)

	eval := subscription.Evaluate(sub, s.Now(), s.billingPolicy())
	return &eval, nil
}

func (s *billingService) SetPaymentMode(ctx context.Context, req dto.SetPaymentModeRequest) (*subscription.Subscription, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityBillingManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	sub.PaymentMode = req.PaymentMode
	sub.AutoPayEnabled = req.PaymentMode == types.PaymentModeAutoPay
	sub.AutoPayPhone = lo.Ternary(sub.AutoPayEnabled, req.AutoPayPhone, "")
	sub.Touch(ctx)

	if err := s.saveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("payment mode changed",
		"organization_id", sub.ID,
		"payment_mode", sub.PaymentMode)
	return sub, nil
}

func (s *billingService) ChangePlan(ctx context.Context, req dto.ChangePlanRequest) (*dto.BillingStatusResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityBillingManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	org, err := s.OrgRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	sub, err := s.SubRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	if sub.Plan == req.Plan {
		return s.statusResponse(sub, subscription.Evaluate(sub, s.Now(), s.billingPolicy())), nil
	}

	if err := s.ensurePlanFits(ctx, org, req.Plan); err != nil {
		return nil, err
	}

	planCfg, _ := s.Config.Billing.Plan(req.Plan)
	fromPlan := sub.Plan
	sub.Plan = req.Plan
	sub.AmountCents = planCfg.PriceCents
	sub.Touch(ctx)
	if err := s.saveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	org.Plan = req.Plan
	org.Touch(ctx)
	if err := s.OrgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, &billinglog.BillingLog{
		OrganizationID: sub.ID,
		SubscriptionID: sub.ID,
		Event:          types.BillingEventPlanChange,
		FromState:      sub.BillingState,
		ToState:        sub.BillingState,
		FromPlan:       fromPlan,
		ToPlan:         req.Plan,
	})

	return s.statusResponse(sub, subscription.Evaluate(sub, s.Now(), s.billingPolicy())), nil
}

// ApplyPayment starts a new paid period for the subscription the payment settles
func (s *billingService) ApplyPayment(ctx context.Context, p *payment.Payment) (*subscription.Subscription, error) {
	sub, err := s.SubRepo.Get(ctx, p.SubscriptionID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	before := subscription.Evaluate(sub, now, s.billingPolicy())
	fromPlan := sub.Plan

	if p.Plan != "" && p.Plan != sub.Plan {
		sub.Plan = p.Plan
		sub.AmountCents = p.AmountCents
	}
	sub.Activate(now, p.Provider, p.ID)
	sub.Touch(ctx)
	if err := s.saveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if fromPlan != sub.Plan {
		if err := s.syncOrganizationPlan(ctx, sub.ID, sub.Plan); err != nil {
			s.Logger.Errorw("failed to update organization plan after payment",
				"error", err,
				"organization_id", sub.ID,
				"plan", sub.Plan)
		}
		s.recordEvent(ctx, &billinglog.BillingLog{
			OrganizationID: sub.ID,
			SubscriptionID: sub.ID,
			Event:          types.BillingEventPlanChange,
			FromState:      before.State,
			ToState:        types.BillingStateActive,
			FromPlan:       fromPlan,
			ToPlan:         sub.Plan,
			PaymentID:      p.ID,
			Reason:         "paid for plan",
		})
	}

	s.recordEvent(ctx, &billinglog.BillingLog{
		OrganizationID: sub.ID,
		SubscriptionID: sub.ID,
		Event:          types.BillingEventPaymentReceived,
		FromState:      before.State,
		ToState:        types.BillingStateActive,
		FromPlan:       fromPlan,
		ToPlan:         sub.Plan,
		PaymentID:      p.ID,
	})
	if before.State == types.BillingStateSuspended {
		s.recordEvent(ctx, &billinglog.BillingLog{
			OrganizationID: sub.ID,
			SubscriptionID: sub.ID,
			Event:          types.BillingEventReactivation,
			FromState:      types.BillingStateSuspended,
			ToState:        types.BillingStateActive,
			PaymentID:      p.ID,
			Reason:         "payment received",
		})
	}
	return sub, nil
}

func (s *billingService) SimulatePayment(ctx context.Context, req dto.SimulatePaymentRequest) (*dto.BillingStatusResponse, error) {
	if err := s.requireDevMode(); err != nil {
		return nil, err
	}
	actor, err := types.RequireCapability(ctx, types.CapabilityBillingManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	plan := lo.Ternary(req.Plan != "", req.Plan, sub.Plan)
	if plan != sub.Plan {
		org, err := s.OrgRepo.Get(ctx, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
		if err := s.ensurePlanFits(ctx, org, plan); err != nil {
			return nil, err
		}
	}
	planCfg, _ := s.Config.Billing.Plan(plan)

	now := s.Now()
	p := &payment.Payment{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		SubscriptionID:    sub.ID,
		Plan:              plan,
		AmountCents:       planCfg.PriceCents,
		Currency:          s.Config.Billing.Currency,
		Provider:          types.PaymentProviderSimulated,
		ProviderReference: types.GenerateShortIDWithPrefix("SIM"),
		AccountReference:  types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ACCOUNT_REFERENCE),
		PaymentStatus:     types.PaymentStatusCompleted,
		PaidAt:            &now,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	sub, err = s.ApplyPayment(ctx, p)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("simulated payment applied",
		"organization_id", sub.ID,
		"payment_id", p.ID,
		"plan", plan)
	return s.statusResponse(sub, subscription.Evaluate(sub, s.Now(), s.billingPolicy())), nil
}

func (s *billingService) ResetTrial(ctx context.Context) (*dto.BillingStatusResponse, error) {
	if err := s.requireDevMode(); err != nil {
		return nil, err
	}
	actor, err := types.RequireCapability(ctx, types.CapabilityBillingManage)
	if err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	fromState := sub.BillingState

	now := s.Now()
	trialEnd := now.AddDate(0, 0, s.Config.Billing.TrialDays)
	sub.BillingState = types.BillingStateTrial
	sub.TrialDays = s.Config.Billing.TrialDays
	sub.TrialStartedAt = now
	sub.TrialEndsAt = &trialEnd
	sub.CurrentPeriodStart = nil
	sub.CurrentPeriodEnd = nil
	sub.NextBillingDate = nil
	sub.LastPaymentDate = nil
	sub.LastPaymentProvider = ""
	sub.LastPaymentID = ""
	sub.SuspendedAt = nil
	sub.SuspensionReason = types.SuspensionReasonNone
	sub.Touch(ctx)
	if err := s.saveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, &billinglog.BillingLog{
		OrganizationID: sub.ID,
		SubscriptionID: sub.ID,
		Event:          types.BillingEventTrialStart,
		FromState:      fromState,
		ToState:        types.BillingStateTrial,
		Reason:         "trial reset",
	})
	return s.statusResponse(sub, subscription.Evaluate(sub, now, s.billingPolicy())), nil
}

// Reactivate lifts a suspension for one billing cycle without a payment
func (s *billingService) Reactivate(ctx context.Context, organizationID string, req dto.ReactivateRequest) (*subscription.Subscription, error) {
	if _, err := requirePlatformAdmin(ctx); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if subscription.Evaluate(sub, now, s.billingPolicy()).State != types.BillingStateSuspended {
		return nil, ierr.NewError("subscription is not suspended").
			WithHint("This organization is not suspended").
			WithOrganization(organizationID).
			Mark(ierr.ErrInvalidOperation)
	}

	end := now.AddDate(0, 0, sub.BillingCycleDays)
	if sub.HasPaid() {
		sub.BillingState = types.BillingStateActive
		sub.CurrentPeriodStart = &now
		sub.CurrentPeriodEnd = &end
		sub.NextBillingDate = &end
	} else {
		sub.BillingState = types.BillingStateTrial
		sub.TrialEndsAt = &end
	}
	sub.SuspendedAt = nil
	sub.SuspensionReason = types.SuspensionReasonNone
	sub.ReactivatedAt = &now
	sub.Touch(ctx)
	if err := s.saveSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, &billinglog.BillingLog{
		OrganizationID: sub.ID,
		SubscriptionID: sub.ID,
		Event:          types.BillingEventReactivation,
		FromState:      types.BillingStateSuspended,
		ToState:        sub.BillingState,
		Reason:         req.Reason,
	})
	return sub, nil
}

// ReconcileStates persists the suspensions the engine has already decided
func (s *billingService) ReconcileStates(ctx context.Context) (*dto.ReconcileResponse, error) {
	subs, err := s.SubRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	resp := &dto.ReconcileResponse{Checked: len(subs), Suspended: []string{}}
	for _, sub := range subs {
		eval := subscription.Evaluate(sub, now, s.billingPolicy())
		if eval.State != types.BillingStateSuspended || sub.BillingState == types.BillingStateSuspended {
			continue
		}

		fromState := sub.BillingState
		sub.Suspend(now, eval.SuspensionReason)
		sub.Touch(ctx)
		if err := s.saveSubscription(ctx, sub); err != nil {
			s.Logger.Errorw("failed to persist suspension",
				"error", err,
				"organization_id", sub.ID)
			continue
		}

		s.recordEvent(ctx, &billinglog.BillingLog{
			OrganizationID: sub.ID,
			SubscriptionID: sub.ID,
			Event:          types.BillingEventSuspension,
			FromState:      fromState,
			ToState:        types.BillingStateSuspended,
			Reason:         string(eval.SuspensionReason),
		})
		resp.Suspended = append(resp.Suspended, sub.ID)
	}

	s.Logger.Infow("billing states reconciled",
		"checked", resp.Checked,
		"suspended", len(resp.Suspended))
	return resp, nil
}

func (s *billingService) ListBillingLogs(ctx context.Context) (*dto.ListBillingLogsResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.BillingLogRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(logs), nil
}

func (s *billingService) requireDevMode() error {
	if !s.Config.Billing.DevMode {
		return ierr.NewError("payment simulation is disabled").
			WithHint("This action is only available in development mode").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}

func (s *billingService) saveSubscription(ctx context.Context, sub *subscription.Subscription) error {
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixSubscription, sub.ID))
	return nil
}

func (s *billingService) syncOrganizationPlan(ctx context.Context, organizationID string, plan types.PlanID) error {
	org, err := s.OrgRepo.Get(ctx, organizationID)
	if err != nil {
		return err
	}
	org.Plan = plan
	org.Touch(ctx)
	return s.OrgRepo.Update(ctx, org)
}

// recordEvent appends to the billing log. A failed write is logged and never
// undoes the transition it describes.
func (s *billingService) recordEvent(ctx context.Context, entry *billinglog.BillingLog) {
	entry.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILLING_LOG)
	entry.CreatedAt = s.Now()
	entry.CreatedBy = types.GetUserID(ctx)

	if err := s.BillingLogRepo.Create(ctx, entry); err != nil {
		s.Logger.Errorw("failed to write billing log",
			"error", err,
			"organization_id", entry.OrganizationID,
			"event", entry.Event)
		return
	}
	s.Metrics.BillingEventsTotal.WithLabelValues(string(entry.Event)).Inc()
}

func (s *billingService) planInfo(id types.PlanID) dto.PlanInfo {
	cfg, _ := s.Config.Billing.Plan(id)
	return dto.PlanInfo{
		ID:           id,
		Name:         cfg.Name,
		PriceCents:   cfg.PriceCents,
		Currency:     s.Config.Billing.Currency,
		MaxLocations: cfg.MaxLocations,
		MaxStaff:     cfg.MaxStaff,
		MaxAdmins:    cfg.MaxAdmins,
	}
}

func (s *billingService) statusResponse(sub *subscription.Subscription, eval subscription.Evaluation) *dto.BillingStatusResponse {
	return &dto.BillingStatusResponse{
		Subscription: sub,
		Evaluation:   eval,
		Plan:         s.planInfo(sub.Plan),
		Plans: lo.Map([]types.PlanID{types.PlanStarter, types.PlanProfessional, types.PlanEnterprise}, func(id types.PlanID, _ int) dto.PlanInfo {
			return s.planInfo(id)
		}),
		SupportEmail: s.Config.Billing.SupportEmail,
		DevMode:      s.Config.Billing.DevMode,
	}
}

// degradedStatus is shown when the subscription cannot be read
func (s *billingService) degradedStatus() *dto.BillingStatusResponse {
	plan := s.Config.Billing.DefaultPlan
	resp := s.statusResponse(&subscription.Subscription{Plan: plan}, subscription.Evaluation{
		State:         types.BillingStateTrial,
		DaysRemaining: s.Config.Billing.TrialDays,
	})
	resp.Subscription = nil
	resp.Degraded = true
	return resp
}
