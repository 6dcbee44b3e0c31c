package access

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	trial := subscription.Evaluation{State: types.BillingStateTrial}
	active := subscription.Evaluation{State: types.BillingStateActive}
	suspended := subscription.Evaluation{State: types.BillingStateSuspended, SuspensionReason: types.SuspensionReasonTrialExpired}

	tests := []struct {
		name string
		area Area
		eval subscription.Evaluation
		role types.SystemRole
		want Decision
	}{
		{"trial general", AreaGeneral, trial, types.SystemRoleEmployee, Decision{Allowed: true}},
		{"active general", AreaGeneral, active, types.SystemRoleAdmin, Decision{Allowed: true, CanPay: true}},
		{"suspended billing admin", AreaBilling, suspended, types.SystemRoleOwner, Decision{Allowed: true, Notice: NoticeSuspendedAdmin, CanPay: true}},
		{"suspended verification", AreaVerification, suspended, types.SystemRoleAdmin, Decision{Allowed: true, Notice: NoticeSuspendedAdmin, CanPay: true}},
		{"suspended general admin", AreaGeneral, suspended, types.SystemRoleAdmin, Decision{Allowed: false, Notice: NoticeSuspendedAdmin, CanPay: true}},
		{"suspended general employee", AreaGeneral, suspended, types.SystemRoleEmployee, Decision{Allowed: false, Notice: NoticeSuspendedEmployee}},
		{"suspended billing manager", AreaBilling, suspended, types.SystemRoleManager, Decision{Allowed: true, Notice: NoticeSuspendedEmployee}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.area, tt.eval, tt.role))
		})
	}
}

type staticSource struct {
	eval *subscription.Evaluation
	err  error
}

func (s staticSource) CurrentEvaluation(context.Context) (*subscription.Evaluation, error) {
	return s.eval, s.err
}

func serve(t *testing.T, source StatusSource, role types.SystemRole) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := types.SetActor(c.Request.Context(), types.Actor{OrganizationID: "org_1", UserID: "user_1", Role: role})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.GET("/v1/staff", RequireArea(AreaGeneral, source, logger.NewNoopLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/staff", nil))
	return w
}

func TestRequireArea_SuspendedRendersNotice(t *testing.T) {
	w := serve(t, staticSource{eval: &subscription.Evaluation{State: types.BillingStateSuspended}}, types.SystemRoleEmployee)
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var body SuspendedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, NoticeSuspendedEmployee, body.Notice)
	assert.False(t, body.CanPay)
	assert.Equal(t, KindSuspended, body.Error.Kind)
}

func TestRequireArea_AllowsAndFailsOpen(t *testing.T) {
	w := serve(t, staticSource{eval: &subscription.Evaluation{State: types.BillingStateActive}}, types.SystemRoleEmployee)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, staticSource{err: errors.New("store unavailable")}, types.SystemRoleEmployee)
	assert.Equal(t, http.StatusOK, w.Code)
}
