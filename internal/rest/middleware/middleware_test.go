package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/sentry"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds an engine with the error handler installed the way the router does
func newEngine(cfg *config.Configuration) *gin.Engine {
	log := logger.NewNoopLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware, ErrorHandler(sentry.NewSentryService(cfg, log), log))
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ierr.ErrorResponse {
	t.Helper()
	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantKind      ierr.Kind
		wantMessage   string
		wantRetryable bool
		wantDetails   map[string]any
	}{
		{
			name: "validation with hint and details",
			err: ierr.NewError("phone is invalid").
				WithHint("Enter a valid Kenyan phone number").
				WithReportableDetails(map[string]any{"field": "phone"}).
				Mark(ierr.ErrValidation),
			wantStatus:  http.StatusBadRequest,
			wantKind:    ierr.KindValidation,
			wantMessage: "Enter a valid Kenyan phone number",
			wantDetails: map[string]any{"field": "phone"},
		},
		{
			name: "seat limit",
			err: ierr.NewError("admin seats exhausted").
				WithHint("Your plan allows 2 admins").
				Mark(ierr.ErrSeatLimitExceeded),
			wantStatus:  http.StatusConflict,
			wantKind:    ierr.KindSeatLimitExceeded,
			wantMessage: "Your plan allows 2 admins",
		},
		{
			name: "transient is retryable",
			err: ierr.NewError("provider unreachable").
				WithHint("Please try again").
				Mark(ierr.ErrTransient),
			wantStatus:    http.StatusServiceUnavailable,
			wantKind:      ierr.KindTransient,
			wantMessage:   "Please try again",
			wantRetryable: true,
		},
		{
			name:        "not found without hint falls back to the message",
			err:         ierr.NewError("staff not found").Mark(ierr.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantKind:    ierr.KindNotFound,
			wantMessage: "staff not found",
		},
		{
			name:        "unclassified error is masked",
			err:         assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantKind:    ierr.KindInternal,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(config.GetDefaultConfig())
			r.GET("/fail", func(c *gin.Context) { c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantKind, resp.Error.Kind)
			assert.Equal(t, tt.wantMessage, resp.Error.Display)
			assert.Equal(t, tt.wantRetryable, resp.Error.Retryable)
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, resp.Error.Details)
			}
		})
	}
}

func TestErrorHandler_NoError(t *testing.T) {
	r := newEngine(config.GetDefaultConfig())
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_KeepsIncomingID(t *testing.T) {
	r := newEngine(config.GetDefaultConfig())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestCronKeyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{name: "matching key", configured: "cron-secret", header: "cron-secret", wantStatus: http.StatusOK},
		{name: "wrong key", configured: "cron-secret", header: "guess", wantStatus: http.StatusForbidden},
		{name: "missing key", configured: "cron-secret", wantStatus: http.StatusForbidden},
		{name: "no key configured", configured: "", header: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Cron.Key = tt.configured

			r := newEngine(cfg)
			r.POST("/cron", CronKeyMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodPost, "/cron", nil)
			if tt.header != "" {
				req.Header.Set("X-Cron-Key", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestMpesaCallbackMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		path       string
		wantStatus int
	}{
		{name: "matching token", configured: "cb-secret", path: "/mpesa?token=cb-secret", wantStatus: http.StatusOK},
		{name: "wrong token", configured: "cb-secret", path: "/mpesa?token=guess", wantStatus: http.StatusForbidden},
		{name: "missing token", configured: "cb-secret", path: "/mpesa", wantStatus: http.StatusForbidden},
		{name: "no token configured", configured: "", path: "/mpesa?token=", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.GetDefaultConfig()
			cfg.Mpesa.CallbackToken = tt.configured

			r := newEngine(cfg)
			r.POST("/mpesa", MpesaCallbackMiddleware(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware)
	r.GET("/v1/staff", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/staff", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouteGroup(t *testing.T) {
	tests := map[string]string{
		"/v1/webhooks/mpesa":                     "webhook",
		"/v1/cron/billing/reconcile":             "cron",
		"/v1/admin/organizations/:id/reactivate": "admin",
		"/v1/staff/:id":                          "api",
		"/health":                                "system",
		"":                                       "system",
	}
	for path, want := range tests {
		assert.Equal(t, want, routeGroup(path), path)
	}
}

func TestSentryScopeMiddleware(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		cfg := config.GetDefaultConfig()
		cfg.Sentry.Enabled = enabled

		r := gin.New()
		r.Use(RequestIDMiddleware, SentryMiddleware(cfg), SentryScopeMiddleware)

		var hubPresent bool
		r.GET("/v1/staff", func(c *gin.Context) {
			hubPresent = sentrygin.GetHubFromContext(c) != nil
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/staff", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, enabled, hubPresent)
	}
}
