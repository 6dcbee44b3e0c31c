package service

import (
	"context"
	"testing"
	"time"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/billinglog"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/testutil"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	ServiceSuite
	service BillingService
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewBillingService(s.params)
}

func (s *BillingServiceSuite) events(ctx context.Context) []types.BillingEvent {
	logs, err := s.service.ListBillingLogs(ctx)
	s.Require().NoError(err)
	return lo.Map(logs.Items, func(l *billinglog.BillingLog, _ int) types.BillingEvent { return l.Event })
}

func (s *BillingServiceSuite) TestSignupStartsTrial() {
	ctx, resp := s.signup("")

	sub := resp.Subscription
	s.Equal(resp.Organization.ID, sub.ID)
	s.Equal(types.PlanStarter, sub.Plan)
	s.Equal(types.BillingStateTrial, sub.BillingState)
	s.Equal(types.PaymentModePayAsYouGo, sub.PaymentMode)
	s.Equal(int64(250000), sub.AmountCents)
	s.Require().NotNil(sub.TrialEndsAt)
	s.WithinDuration(s.GetNow().AddDate(0, 0, 10), *sub.TrialEndsAt, time.Second)

	s.ElementsMatch([]types.BillingEvent{types.BillingEventTrialStart}, s.events(ctx))
}

func (s *BillingServiceSuite) TestGetBillingStatus_TrialCountdown() {
	ctx, _ := s.signup(types.PlanStarter)

	status, err := s.service.GetBillingStatus(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, status.Evaluation.State)
	s.Equal(10, status.Evaluation.DaysRemaining)
	s.Equal(types.PlanStarter, status.Plan.ID)
	s.Len(status.Plans, 3)
	s.True(status.DevMode)

	s.GetClock().Advance(9*24*time.Hour + 12*time.Hour)
	status, err = s.service.GetBillingStatus(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, status.Evaluation.State)
	s.Equal(1, status.Evaluation.DaysRemaining)

	s.GetClock().Advance(12 * time.Hour)
	status, err = s.service.GetBillingStatus(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateSuspended, status.Evaluation.State)
	s.Equal(types.SuspensionReasonTrialExpired, status.Evaluation.SuspensionReason)
	s.True(status.Evaluation.IsTrialExpired)
}

func (s *BillingServiceSuite) TestGetBillingStatus_MissingSubscription() {
	ctx := testutil.WithActor(s.GetContext(), "org_missing", "user_1", "staff_1", types.SystemRoleOwner)

	_, err := s.service.GetBillingStatus(ctx)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestSetPaymentMode() {
	ctx, resp := s.signup(types.PlanStarter)

	_, err := s.service.SetPaymentMode(ctx, dto.SetPaymentModeRequest{PaymentMode: types.PaymentModeAutoPay, AutoPayPhone: "12345"})
	s.True(ierr.IsValidation(err))

	sub, err := s.service.SetPaymentMode(ctx, dto.SetPaymentModeRequest{PaymentMode: types.PaymentModeAutoPay, AutoPayPhone: "0712 345 678"})
	s.Require().NoError(err)
	s.True(sub.AutoPayEnabled)
	s.Equal("254712345678", sub.AutoPayPhone)

	sub, err = s.service.SetPaymentMode(ctx, dto.SetPaymentModeRequest{PaymentMode: types.PaymentModePayAsYouGo})
	s.Require().NoError(err)
	s.False(sub.AutoPayEnabled)
	s.Empty(sub.AutoPayPhone)

	employeeCtx := testutil.WithActor(s.GetContext(), resp.Organization.ID, "user_emp", "staff_emp", types.SystemRoleEmployee)
	_, err = s.service.SetPaymentMode(employeeCtx, dto.SetPaymentModeRequest{PaymentMode: types.PaymentModePayAsYouGo})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BillingServiceSuite) TestChangePlan() {
	ctx, resp := s.signup(types.PlanStarter)

	status, err := s.service.ChangePlan(ctx, dto.ChangePlanRequest{Plan: types.PlanProfessional})
	s.Require().NoError(err)
	s.Equal(types.PlanProfessional, status.Subscription.Plan)
	s.Equal(int64(750000), status.Subscription.AmountCents)

	org, err := s.GetStores().OrganizationRepo.Get(ctx, resp.Organization.ID)
	s.Require().NoError(err)
	s.Equal(types.PlanProfessional, org.Plan)

	locations := NewLocationService(s.params)
	_, err = locations.CreateLocation(ctx, dto.CreateLocationRequest{Name: "Westlands Clinic", County: "Nairobi"})
	s.Require().NoError(err)

	_, err = s.service.ChangePlan(ctx, dto.ChangePlanRequest{Plan: types.PlanStarter})
	s.True(ierr.IsValidation(err))
	s.Equal(ierr.KindValidation, ierr.KindOf(err))

	s.Contains(s.events(ctx), types.BillingEventPlanChange)
}

func (s *BillingServiceSuite) TestSimulatePayment() {
	ctx, _ := s.signup(types.PlanStarter)

	status, err := s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{})
	s.Require().NoError(err)
	s.Equal(types.BillingStateActive, status.Evaluation.State)
	s.Equal(31, status.Evaluation.DaysRemaining)
	s.Require().NotNil(status.Subscription.CurrentPeriodEnd)
	s.WithinDuration(s.GetNow().AddDate(0, 0, 31), *status.Subscription.CurrentPeriodEnd, time.Second)
	s.Equal(types.PaymentProviderSimulated, status.Subscription.LastPaymentProvider)

	payments, err := s.GetStores().PaymentRepo.List(ctx, status.Subscription.ID)
	s.Require().NoError(err)
	s.Require().Len(payments, 1)
	s.Equal(types.PaymentStatusCompleted, payments[0].PaymentStatus)

	s.ElementsMatch([]types.BillingEvent{types.BillingEventTrialStart, types.BillingEventPaymentReceived}, s.events(ctx))
}

func (s *BillingServiceSuite) TestSimulatePayment_PlanMustFitUsage() {
	ctx, _ := s.signup(types.PlanProfessional)
	_, err := NewLocationService(s.params).CreateLocation(ctx, dto.CreateLocationRequest{Name: "Westlands Clinic", County: "Nairobi"})
	s.Require().NoError(err)

	_, err = s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{Plan: types.PlanStarter})
	s.True(ierr.IsValidation(err))
	s.NotContains(s.events(ctx), types.BillingEventPaymentReceived)
}

func (s *BillingServiceSuite) TestSimulatePayment_DevModeOnly() {
	ctx, _ := s.signup(types.PlanStarter)

	s.GetConfig().Billing.DevMode = false
	defer func() { s.GetConfig().Billing.DevMode = true }()

	_, err := s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{})
	s.True(ierr.IsPermissionDenied(err))
	_, err = s.service.ResetTrial(ctx)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BillingServiceSuite) TestPaymentAfterSuspensionLogsReactivation() {
	ctx, _ := s.signup(types.PlanStarter)
	s.GetClock().Advance(11 * 24 * time.Hour)

	_, err := s.service.ReconcileStates(s.GetContext())
	s.Require().NoError(err)

	status, err := s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{Plan: types.PlanProfessional})
	s.Require().NoError(err)
	s.Equal(types.BillingStateActive, status.Evaluation.State)
	s.Equal(types.PlanProfessional, status.Subscription.Plan)
	s.NotNil(status.Subscription.ReactivatedAt)

	s.ElementsMatch([]types.BillingEvent{
		types.BillingEventTrialStart,
		types.BillingEventSuspension,
		types.BillingEventPlanChange,
		types.BillingEventPaymentReceived,
		types.BillingEventReactivation,
	}, s.events(ctx))
}

func (s *BillingServiceSuite) TestReconcileStates() {
	expiredCtx, expired := s.signup(types.PlanStarter)
	s.GetClock().Advance(5 * 24 * time.Hour)
	_, fresh := s.signup(types.PlanStarter)
	s.GetClock().Advance(6 * 24 * time.Hour)

	resp, err := s.service.ReconcileStates(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, resp.Checked)
	s.Equal([]string{expired.Organization.ID}, resp.Suspended)

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), expired.Organization.ID)
	s.Require().NoError(err)
	s.Equal(types.BillingStateSuspended, sub.BillingState)
	s.Equal(types.SuspensionReasonTrialExpired, sub.SuspensionReason)

	sub, err = s.GetStores().SubscriptionRepo.Get(s.GetContext(), fresh.Organization.ID)
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, sub.BillingState)

	resp, err = s.service.ReconcileStates(s.GetContext())
	s.Require().NoError(err)
	s.Empty(resp.Suspended)
	s.ElementsMatch([]types.BillingEvent{types.BillingEventTrialStart, types.BillingEventSuspension}, s.events(expiredCtx))
}

func (s *BillingServiceSuite) TestReactivate() {
	ctx, resp := s.signup(types.PlanStarter)
	orgID := resp.Organization.ID
	admin := testutil.WithPlatformAdmin(s.GetContext())

	_, err := s.service.Reactivate(admin, orgID, dto.ReactivateRequest{Reason: "goodwill"})
	s.True(ierr.IsInvalidOperation(err))

	s.GetClock().Advance(11 * 24 * time.Hour)

	_, err = s.service.Reactivate(ctx, orgID, dto.ReactivateRequest{Reason: "goodwill"})
	s.True(ierr.IsPermissionDenied(err))
	_, err = s.service.Reactivate(admin, orgID, dto.ReactivateRequest{})
	s.True(ierr.IsValidation(err))

	sub, err := s.service.Reactivate(admin, orgID, dto.ReactivateRequest{Reason: "goodwill"})
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, sub.BillingState)
	s.Require().NotNil(sub.TrialEndsAt)
	s.WithinDuration(s.GetNow().AddDate(0, 0, 31), *sub.TrialEndsAt, time.Second)

	status, err := s.service.GetBillingStatus(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, status.Evaluation.State)
	s.Contains(s.events(ctx), types.BillingEventReactivation)
}

func (s *BillingServiceSuite) TestReactivate_PaidOrganization() {
	ctx, resp := s.signup(types.PlanStarter)
	_, err := s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{})
	s.Require().NoError(err)

	s.GetClock().Advance(32 * 24 * time.Hour)
	status, err := s.service.GetBillingStatus(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateSuspended, status.Evaluation.State)
	s.Equal(types.SuspensionReasonPaymentOverdue, status.Evaluation.SuspensionReason)

	sub, err := s.service.Reactivate(testutil.WithPlatformAdmin(s.GetContext()), resp.Organization.ID, dto.ReactivateRequest{Reason: "bank transfer received"})
	s.Require().NoError(err)
	s.Equal(types.BillingStateActive, sub.BillingState)
	s.Require().NotNil(sub.CurrentPeriodEnd)
	s.WithinDuration(s.GetNow().AddDate(0, 0, 31), *sub.CurrentPeriodEnd, time.Second)
}

func (s *BillingServiceSuite) TestCurrentEvaluation_InvalidatedOnWrite() {
	ctx, _ := s.signup(types.PlanStarter)

	eval, err := s.service.CurrentEvaluation(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, eval.State)

	_, err = s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{})
	s.Require().NoError(err)

	eval, err = s.service.CurrentEvaluation(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateActive, eval.State)
}

func (s *BillingServiceSuite) TestResetTrial() {
	ctx, _ := s.signup(types.PlanStarter)
	_, err := s.service.SimulatePayment(ctx, dto.SimulatePaymentRequest{})
	s.Require().NoError(err)

	status, err := s.service.ResetTrial(ctx)
	s.Require().NoError(err)
	s.Equal(types.BillingStateTrial, status.Evaluation.State)
	s.Equal(10, status.Evaluation.DaysRemaining)
	s.False(status.Subscription.HasPaid())
}
