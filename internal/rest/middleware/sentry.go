package middleware

import (
	"strings"
	"time"

	"github.com/afyastaff/afyastaff/internal/config"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware returns a middleware that captures errors and performance data
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware tags the request's Sentry scope with the request id
// and route group, then with the caller resolved by authentication.
// It must run after SentryMiddleware.
func SentryScopeMiddleware(c *gin.Context) {
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		c.Next()
		return
	}

	scope := hub.Scope()
	scope.SetTag("request_id", types.GetRequestID(c.Request.Context()))
	scope.SetTag("route_group", routeGroup(c.FullPath()))

	c.Next()

	ctx := c.Request.Context()
	if orgID := types.GetOrganizationID(ctx); orgID != "" {
		scope.SetTag("organization_id", orgID)
	}
	if userID := types.GetUserID(ctx); userID != "" {
		scope.SetUser(sentry.User{ID: userID})
	}
}

// routeGroup buckets a route so provider callbacks and scheduler calls can be
// filtered apart from user traffic
func routeGroup(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/webhooks/"):
		return "webhook"
	case strings.HasPrefix(path, "/v1/cron/"):
		return "cron"
	case strings.HasPrefix(path, "/v1/admin/"):
		return "admin"
	case strings.HasPrefix(path, "/v1/"):
		return "api"
	default:
		return "system"
	}
}
