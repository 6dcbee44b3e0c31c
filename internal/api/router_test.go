package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afyastaff/afyastaff/internal/access"
	"github.com/afyastaff/afyastaff/internal/api/cron"
	v1 "github.com/afyastaff/afyastaff/internal/api/v1"
	"github.com/afyastaff/afyastaff/internal/auth"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/integration"
	"github.com/afyastaff/afyastaff/internal/metrics"
	"github.com/afyastaff/afyastaff/internal/sentry"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/afyastaff/afyastaff/internal/testutil"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
	auth   auth.Provider
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	cfg := s.GetConfig()
	cfg.Cron.Key = "cron-secret"
	cfg.Mpesa.CallbackToken = "cb-secret"
	log := s.GetLogger()
	sentrySvc := sentry.NewSentryService(cfg, log)
	m := metrics.NewDefault()

	stores := s.GetStores()
	params := service.NewServiceParams(
		log, cfg, s.GetCache(), m, sentrySvc,
		integration.NewFactory(
			testutil.NewFakeGateway(types.PaymentProviderMpesa),
			testutil.NewFakeGateway(types.PaymentProviderStripe),
		),
		stores.OrganizationRepo,
		stores.SubscriptionRepo,
		stores.PaymentRepo,
		stores.BillingLogRepo,
		stores.LocationRepo,
		stores.StaffRepo,
		stores.SeatRepo,
		stores.RoleRepo,
		stores.LeaveRepo,
		stores.DocumentRepo,
		stores.ScheduleRepo,
		stores.AttendanceRepo,
		stores.PayrollRepo,
	)
	params.Now = s.GetClock().Now

	billing := service.NewBillingService(params)
	payments := service.NewPaymentService(params)
	handlers := Handlers{
		Health:       v1.NewHealthHandler(log),
		Organization: v1.NewOrganizationHandler(service.NewOrganizationService(params), log),
		Billing:      v1.NewBillingHandler(billing, service.NewUsageService(params), log),
		Payment:      v1.NewPaymentHandler(payments, log),
		Webhook:      v1.NewWebhookHandler(payments, log),
		Staff:        v1.NewStaffHandler(service.NewStaffService(params), log),
		Role:         v1.NewRoleHandler(service.NewRoleService(params), log),
		Location:     v1.NewLocationHandler(service.NewLocationService(params), log),
		Leave:        v1.NewLeaveHandler(service.NewLeaveService(params), log),
		Document:     v1.NewDocumentHandler(service.NewDocumentService(params), log),
		Schedule:     v1.NewScheduleHandler(service.NewScheduleService(params), log),
		Attendance:   v1.NewAttendanceHandler(service.NewAttendanceService(params), log),
		Payroll:      v1.NewPayrollHandler(service.NewPayrollService(params), log),
		Dashboard:    v1.NewDashboardHandler(service.NewDashboardService(params), log),
		CronBilling:  cron.NewBillingHandler(billing, payments, log),
	}

	s.auth = auth.NewProvider(cfg)
	s.router = NewRouter(handlers, RouterDeps{
		Config:  cfg,
		Logger:  log,
		Sentry:  sentrySvc,
		Metrics: m,
		Auth:    s.auth,
		Actors:  service.NewActorService(params),
		Billing: billing,
	})
}

func (s *RouterSuite) token(userID, orgID string) string {
	token, err := s.auth.GenerateToken(auth.Claims{UserID: userID, OrganizationID: orgID}, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *RouterSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// signup registers a facility over HTTP and returns the owner's token and the organization id
func (s *RouterSuite) signup() (string, string) {
	userID := "user_" + s.GetUUID()
	w := s.do(http.MethodPost, "/v1/organizations", s.token(userID, ""), map[string]any{
		"name":       "Uzima Medical Centre",
		"email":      "admin@uzima.co.ke",
		"phone":      "0712345678",
		"county":     "Nairobi",
		"owner_name": "Wanjiru Kamau",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Organization struct {
			ID string `json:"id"`
		} `json:"organization"`
	}
	s.decode(w, &resp)
	return s.token(userID, resp.Organization.ID), resp.Organization.ID
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
}

func (s *RouterSuite) TestMetrics() {
	s.do(http.MethodGet, "/health", "", nil)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "afyastaff_http_requests_total")
}

func (s *RouterSuite) TestRequiresAuthentication() {
	w := s.do(http.MethodGet, "/v1/staff", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestSignupAndProfile() {
	ownerToken, orgID := s.signup()

	w := s.do(http.MethodGet, "/v1/staff/me", ownerToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var me struct {
		OrganizationID string           `json:"organization_id"`
		SystemRole     types.SystemRole `json:"system_role"`
	}
	s.decode(w, &me)
	s.Equal(orgID, me.OrganizationID)
	s.Equal(types.SystemRoleOwner, me.SystemRole)

	w = s.do(http.MethodGet, "/v1/organization", ownerToken, nil)
	s.Equal(http.StatusOK, w.Code)

	// a second signup by the same user is refused
	w = s.do(http.MethodPost, "/v1/organizations", ownerToken, map[string]any{
		"name":       "Second Clinic",
		"email":      "second@uzima.co.ke",
		"phone":      "0712345679",
		"county":     "Kiambu",
		"owner_name": "Wanjiru Kamau",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterSuite) TestSeatLimitError() {
	ownerToken, _ := s.signup()

	admin := map[string]any{"name": "Otieno Ouma", "system_role": types.SystemRoleAdmin, "basic_salary": 60000}
	w := s.do(http.MethodPost, "/v1/staff", ownerToken, admin)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/staff", ownerToken, admin)
	s.Equal(http.StatusConflict, w.Code)
	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.Equal(ierr.KindSeatLimitExceeded, resp.Error.Kind)
	s.False(resp.Error.Retryable)
	s.NotEmpty(resp.Error.Display)
}

func (s *RouterSuite) TestSuspendedAccessGate() {
	ownerToken, orgID := s.signup()

	w := s.do(http.MethodPost, "/v1/staff", ownerToken, map[string]any{
		"user_id":      "user_nurse",
		"name":         "Achieng Odhiambo",
		"system_role":  types.SystemRoleEmployee,
		"basic_salary": 45000,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	nurseToken := s.token("user_nurse", orgID)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/v1/staff/me", nurseToken, nil).Code)

	s.GetClock().Advance(10 * 24 * time.Hour)

	w = s.do(http.MethodGet, "/v1/staff", ownerToken, nil)
	s.Equal(http.StatusPaymentRequired, w.Code)
	var suspended access.SuspendedResponse
	s.decode(w, &suspended)
	s.Equal(access.NoticeSuspendedAdmin, suspended.Notice)
	s.True(suspended.CanPay)
	s.Equal(access.KindSuspended, suspended.Error.Kind)

	// billing stays reachable so the owner can pay
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/v1/billing", ownerToken, nil).Code)

	w = s.do(http.MethodGet, "/v1/staff/me", nurseToken, nil)
	s.Equal(http.StatusPaymentRequired, w.Code)
	s.decode(w, &suspended)
	s.Equal(access.NoticeSuspendedEmployee, suspended.Notice)
	s.False(suspended.CanPay)
}

func (s *RouterSuite) TestCronRequiresKey() {
	s.signup()
	s.GetClock().Advance(11 * 24 * time.Hour)

	w := s.do(http.MethodPost, "/v1/cron/billing/reconcile", "", nil)
	s.Equal(http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/cron/billing/reconcile", nil)
	req.Header.Set("X-Cron-Key", "cron-secret")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Checked   int      `json:"checked"`
		Suspended []string `json:"suspended"`
	}
	s.decode(rec, &resp)
	s.Equal(1, resp.Checked)
	s.Len(resp.Suspended, 1)
}

func (s *RouterSuite) TestMpesaCallbackIsAlwaysAcknowledged() {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/mpesa?token=cb-secret", bytes.NewBufferString(`not json`))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ResultCode":0,"ResultDesc":"Accepted"}`, w.Body.String())
}

func (s *RouterSuite) TestStripeWebhookRequiresSignature() {
	w := s.do(http.MethodPost, "/v1/webhooks/stripe", "", map[string]any{"type": "checkout.session.completed"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) stkCallback(path, checkoutID string, amount int) *httptest.ResponseRecorder {
	body := fmt.Sprintf(`{"Body":{"stkCallback":{"MerchantRequestID":"m1","CheckoutRequestID":%q,"ResultCode":0,"ResultDesc":"The service request is processed successfully.",
		"CallbackMetadata":{"Item":[{"Name":"Amount","Value":%d},{"Name":"MpesaReceiptNumber","Value":"NLJ7RT61SV"}]}}}}`, checkoutID, amount)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) paymentStatus(token, paymentID string) types.PaymentStatus {
	w := s.do(http.MethodGet, "/v1/billing/payments/"+paymentID, token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var p struct {
		PaymentStatus types.PaymentStatus `json:"payment_status"`
	}
	s.decode(w, &p)
	return p.PaymentStatus
}

func (s *RouterSuite) billingState(token string) types.BillingState {
	w := s.do(http.MethodGet, "/v1/billing", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var status struct {
		Evaluation struct {
			State types.BillingState `json:"state"`
		} `json:"evaluation"`
	}
	s.decode(w, &status)
	return status.Evaluation.State
}

func (s *RouterSuite) TestMpesaCallbackSettlement() {
	ownerToken, _ := s.signup()

	w := s.do(http.MethodPost, "/v1/billing/payments", ownerToken, map[string]any{
		"provider": types.PaymentProviderMpesa,
		"phone":    "0712345678",
		"plan":     types.PlanEnterprise,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var initiated struct {
		PaymentID         string `json:"payment_id"`
		ProviderReference string `json:"provider_reference"`
	}
	s.decode(w, &initiated)

	// a callback without the registered token is refused and settles nothing
	w = s.stkCallback("/v1/webhooks/mpesa", initiated.ProviderReference, 20000)
	s.Equal(http.StatusForbidden, w.Code)
	w = s.stkCallback("/v1/webhooks/mpesa?token=guess", initiated.ProviderReference, 20000)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(types.PaymentStatusPending, s.paymentStatus(ownerToken, initiated.PaymentID))

	// paying less than the enterprise price fails the payment
	w = s.stkCallback("/v1/webhooks/mpesa?token=cb-secret", initiated.ProviderReference, 1)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(types.PaymentStatusFailed, s.paymentStatus(ownerToken, initiated.PaymentID))
	s.Equal(types.BillingStateTrial, s.billingState(ownerToken))
}

func (s *RouterSuite) TestMpesaCallbackSettlesFullAmount() {
	ownerToken, _ := s.signup()

	w := s.do(http.MethodPost, "/v1/billing/payments", ownerToken, map[string]any{
		"provider": types.PaymentProviderMpesa,
		"phone":    "0712345678",
		"plan":     types.PlanEnterprise,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var initiated struct {
		PaymentID         string `json:"payment_id"`
		ProviderReference string `json:"provider_reference"`
	}
	s.decode(w, &initiated)

	w = s.stkCallback("/v1/webhooks/mpesa?token=cb-secret", initiated.ProviderReference, 20000)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(types.PaymentStatusCompleted, s.paymentStatus(ownerToken, initiated.PaymentID))
	s.Equal(types.BillingStateActive, s.billingState(ownerToken))
}
