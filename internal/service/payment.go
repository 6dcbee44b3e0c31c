package service

import (
	"context"
	"sync"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/payment"
	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/idempotency"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/integration/mpesa"
	"github.com/afyastaff/afyastaff/internal/sentry"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
)

const (
	// initiationWindow groups retries of the same payment request
	initiationWindow = 2 * time.Minute
	// autoPayLeadTime is how long before the period end a renewal is pushed
	autoPayLeadTime = 24 * time.Hour
)

type PaymentService interface {
	InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)
	HandleMpesaCallback(ctx context.Context, payload []byte) (*payment.Payment, error)
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*payment.Payment, error)
	ConfirmPayment(ctx context.Context, c *integration.Confirmation) (*payment.Payment, error)
	ListPayments(ctx context.Context) (*dto.ListPaymentsResponse, error)
	GetPayment(ctx context.Context, id string) (*payment.Payment, error)
	ProcessAutoPayRenewals(ctx context.Context) (*dto.AutoPayResponse, error)
}

type paymentService struct {
	ServiceParams
	billing BillingService

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
		billing:       NewBillingService(params),
		limiters:      make(map[string]*rate.Limiter),
	}
}

// initiation is one provider request on behalf of an organization
type initiation struct {
	sub      *subscription.Subscription
	provider types.PaymentProvider
	plan     types.PlanID
	phone    string
	email    string
	key      string
}

func (s *paymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	actor, err := types.RequireCapability(ctx, types.CapabilityBillingManage)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !s.allow(actor.OrganizationID) {
		return nil, ierr.NewError("payment initiation rate limited").
			WithHint("Too many payment attempts. Please wait a minute and try again.").
			WithOrganization(actor.OrganizationID).
			Mark(ierr.ErrTransient)
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

	key := s.Idempotency.GenerateKey(idempotency.ScopePayment, map[string]interface{}{
		"organization_id": actor.OrganizationID,
		"provider":        req.Provider,
		"plan":            plan,
		"contact":         lo.Ternary(req.Provider == types.PaymentProviderMpesa, req.Phone, req.Email),
		"window":          s.Now().Truncate(initiationWindow).Unix(),
	})

	p, err := s.initiate(ctx, initiation{
		sub:      sub,
		provider: req.Provider,
		plan:     plan,
		phone:    req.Phone,
		email:    req.Email,
		key:      key,
	})
	if err != nil {
		return nil, err
	}

	return &dto.InitiatePaymentResponse{
		Success:           true,
		Message:           initiationMessage(p.Provider),
		PaymentID:         p.ID,
		ProviderReference: p.ProviderReference,
		PaymentLink:       p.CheckoutURL,
	}, nil
}

// initiate creates the PENDING record and asks the provider to collect it.
// A pending payment with the same idempotency key is returned as is.
func (s *paymentService) initiate(ctx context.Context, in initiation) (*payment.Payment, error) {
	pending, err := s.PaymentRepo.ListPending(ctx, in.sub.ID)
	if err != nil {
		return nil, err
	}
	if existing, ok := lo.Find(pending, func(p *payment.Payment) bool { return p.IdempotencyKey == in.key }); ok {
		s.Logger.Infow("returning in-flight payment for repeated request",
			"organization_id", in.sub.ID,
			"payment_id", existing.ID)
		return existing, nil
	}

	gateway, err := s.Gateways.Get(in.provider)
	if err != nil {
		return nil, err
	}
	planCfg, _ := s.Config.Billing.Plan(in.plan)

	p := &payment.Payment{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
		SubscriptionID:   in.sub.ID,
		Plan:             in.plan,
		AmountCents:      planCfg.PriceCents,
		Currency:         s.Config.Billing.Currency,
		Provider:         in.provider,
		AccountReference: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_ACCOUNT_REFERENCE),
		Phone:            in.phone,
		Email:            in.email,
		PaymentStatus:    types.PaymentStatusPending,
		IdempotencyKey:   in.key,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
	p.OrganizationID = in.sub.ID
	if err := s.PaymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	span, spanCtx := s.Sentry.StartProviderSpan(ctx, in.provider, "initiate")
	start := time.Now()
	result, err := gateway.Initiate(spanCtx, &integration.InitiateRequest{
		PaymentID:        p.ID,
		OrganizationID:   in.sub.ID,
		AccountReference: p.AccountReference,
		Plan:             in.plan,
		PlanName:         planCfg.Name,
		AmountCents:      p.AmountCents,
		Currency:         p.Currency,
		Phone:            in.phone,
		Email:            in.email,
	})
	sentry.FinishSpan(span)
	s.Metrics.ProviderDuration.WithLabelValues(string(in.provider)).Observe(time.Since(start).Seconds())

	if err != nil {
		s.Metrics.PaymentsInitiatedTotal.WithLabelValues(string(in.provider), "failed").Inc()
		s.markFailed(ctx, p, err)
		if ierr.IsProvider(err) {
			return nil, err
		}
		s.Sentry.CaptureException(ctx, err)
		return nil, ierr.WithError(err).
			WithHint("We could not reach the payment provider. Please try again.").
			WithReportableDetails(map[string]any{
				"provider":   in.provider,
				"payment_id": p.ID,
			}).
			Mark(ierr.ErrTransient)
	}

	p.ProviderReference = result.ProviderReference
	p.CheckoutURL = result.PaymentLink
	p.Touch(ctx)
	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Metrics.PaymentsInitiatedTotal.WithLabelValues(string(in.provider), "initiated").Inc()

	s.Logger.Infow("payment initiated",
		"organization_id", in.sub.ID,
		"payment_id", p.ID,
		"provider", in.provider,
		"provider_reference", p.ProviderReference)
	return p, nil
}

func (s *paymentService) markFailed(ctx context.Context, p *payment.Payment, cause error) {
	now := s.Now()
	p.PaymentStatus = types.PaymentStatusFailed
	p.FailureMessage = ierr.DisplayMessage(cause)
	p.FailedAt = &now
	p.Touch(ctx)
	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		s.Logger.Errorw("failed to mark payment as failed",
			"error", err,
			"payment_id", p.ID)
	}
}

func (s *paymentService) HandleMpesaCallback(ctx context.Context, payload []byte) (*payment.Payment, error) {
	confirmation, err := mpesa.ParseCallback(payload)
	if err != nil {
		return nil, err
	}
	return s.ConfirmPayment(ctx, confirmation)
}

func (s *paymentService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) (*payment.Payment, error) {
	gateway, err := s.Gateways.Get(types.PaymentProviderStripe)
	if err != nil {
		return nil, err
	}
	verifier, ok := gateway.(integration.WebhookVerifier)
	if !ok {
		return nil, ierr.NewError("stripe gateway cannot verify webhooks").
			Mark(ierr.ErrInvalidOperation)
	}

	confirmation, err := verifier.ParseWebhook(payload, signature)
	if err != nil {
		return nil, err
	}
	return s.ConfirmPayment(ctx, confirmation)
}

// ConfirmPayment settles a payment from a provider confirmation. Repeated
// confirmations of a completed payment change nothing. A success reporting
// less than the payment amount fails the payment.
func (s *paymentService) ConfirmPayment(ctx context.Context, c *integration.Confirmation) (*payment.Payment, error) {
	if c.Outcome == integration.OutcomeIgnored {
		s.Logger.Debugw("ignoring provider event", "provider", c.Provider)
		return nil, nil
	}

	p, err := s.findPayment(ctx, c)
	if err != nil {
		return nil, err
	}
	if p.IsCompleted() {
		s.Logger.Infow("payment already completed, ignoring confirmation",
			"payment_id", p.ID,
			"provider", c.Provider)
		return p, nil
	}

	now := s.Now()
	switch c.Outcome {
	case integration.OutcomeSucceeded:
		if c.AmountCents < p.AmountCents {
			s.Logger.Warnw("provider settled less than the payment amount",
				"payment_id", p.ID,
				"provider", c.Provider,
				"amount_cents", p.AmountCents,
				"settled_cents", c.AmountCents)
			p.PaymentStatus = types.PaymentStatusFailed
			p.FailureMessage = "settled amount is below the plan price"
			p.FailedAt = &now
			break
		}
		// the period is applied first so a retried webhook can still apply it
		if _, err := s.billing.ApplyPayment(ctx, p); err != nil {
			return nil, err
		}
		p.PaymentStatus = types.PaymentStatusCompleted
		p.ProviderReceipt = c.Receipt
		p.PaidAt = &now
		p.FailureMessage = ""
	case integration.OutcomeCancelled:
		p.PaymentStatus = types.PaymentStatusCancelled
		p.FailureMessage = c.Message
		p.FailedAt = &now
	default:
		p.PaymentStatus = types.PaymentStatusFailed
		p.FailureMessage = c.Message
		p.FailedAt = &now
	}
	if p.ProviderReference == "" {
		p.ProviderReference = c.ProviderReference
	}
	p.Touch(ctx)

	if err := s.PaymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.Metrics.PaymentsSettledTotal.WithLabelValues(string(p.Provider), string(p.PaymentStatus)).Inc()

	s.Logger.Infow("payment confirmed",
		"payment_id", p.ID,
		"organization_id", p.SubscriptionID,
		"provider", p.Provider,
		"payment_status", p.PaymentStatus)
	return p, nil
}

func (s *paymentService) findPayment(ctx context.Context, c *integration.Confirmation) (*payment.Payment, error) {
	if c.PaymentID != "" {
		return s.PaymentRepo.Get(ctx, c.PaymentID)
	}
	if c.ProviderReference == "" {
		return nil, ierr.NewError("confirmation without payment reference").
			WithHint("The provider event does not reference a payment").
			Mark(ierr.ErrValidation)
	}
	return s.PaymentRepo.GetByProviderReference(ctx, c.Provider, c.ProviderReference)
}

func (s *paymentService) ListPayments(ctx context.Context) (*dto.ListPaymentsResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(payments), nil
}

func (s *paymentService) GetPayment(ctx context.Context, id string) (*payment.Payment, error) {
	if _, err := types.RequireOrganization(ctx); err != nil {
		return nil, err
	}
	return s.PaymentRepo.Get(ctx, id)
}

// ProcessAutoPayRenewals pushes an M-Pesa request for every auto-pay
// subscription whose paid period ends within the lead time
func (s *paymentService) ProcessAutoPayRenewals(ctx context.Context) (*dto.AutoPayResponse, error) {
	subs, err := s.SubRepo.ListByPaymentMode(ctx, types.PaymentModeAutoPay)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	resp := &dto.AutoPayResponse{Initiated: []string{}, Failed: []string{}}
	for _, sub := range subs {
		if !sub.AutoPayEnabled || sub.AutoPayPhone == "" || sub.CurrentPeriodEnd == nil {
			continue
		}
		if sub.CurrentPeriodEnd.Sub(now) > autoPayLeadTime {
			continue
		}
		resp.Checked++

		orgCtx := types.SetOrganizationID(ctx, sub.ID)
		key := s.Idempotency.GenerateKey(idempotency.ScopeAutoPay, map[string]interface{}{
			"organization_id": sub.ID,
			"period_end":      sub.CurrentPeriodEnd.Unix(),
		})
		_, err := s.initiate(orgCtx, initiation{
			sub:      sub,
			provider: types.PaymentProviderMpesa,
			plan:     sub.Plan,
			phone:    sub.AutoPayPhone,
			key:      key,
		})
		if err != nil {
			s.Logger.Errorw("failed to initiate auto-pay renewal",
				"error", err,
				"organization_id", sub.ID)
			resp.Failed = append(resp.Failed, sub.ID)
			continue
		}
		resp.Initiated = append(resp.Initiated, sub.ID)
	}

	s.Logger.Infow("auto-pay renewals processed",
		"checked", resp.Checked,
		"initiated", len(resp.Initiated),
		"failed", len(resp.Failed))
	return resp, nil
}

// allow applies the per organization initiation limit
func (s *paymentService) allow(organizationID string) bool {
	perMinute := s.Config.RateLimit.PaymentsPerMinute
	if perMinute <= 0 {
		return true
	}

	s.mu.Lock()
	limiter, ok := s.limiters[organizationID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(s.Config.RateLimit.Burst, 1))
		s.limiters[organizationID] = limiter
	}
	s.mu.Unlock()

	return limiter.AllowN(s.Now(), 1)
}

func initiationMessage(provider types.PaymentProvider) string {
	switch provider {
	case types.PaymentProviderMpesa:
		return "Check your phone and enter your M-Pesa PIN to complete the payment"
	case types.PaymentProviderStripe:
		return "Continue to the secure checkout page to complete the payment"
	default:
		return "Payment started"
	}
}
