package access

import (
	"context"
	"net/http"

	"github.com/afyastaff/afyastaff/internal/domain/subscription"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/gin-gonic/gin"
)

// KindSuspended classifies requests refused because billing is suspended
const KindSuspended ierr.Kind = "BillingSuspended"

// ContextKeyDecision is the gin key holding the Decision of the current request
const ContextKeyDecision = "access_decision"

// StatusSource reports the effective billing state of the request's organization
type StatusSource interface {
	CurrentEvaluation(ctx context.Context) (*subscription.Evaluation, error)
}

// SuspendedResponse is rendered with 402 when an area is closed
type SuspendedResponse struct {
	Success bool             `json:"success"`
	Notice  Notice           `json:"notice"`
	CanPay  bool             `json:"can_pay"`
	Error   ierr.ErrorDetail `json:"error"`
}

// RequireArea gates the route group behind the billing policy
func RequireArea(area Area, source StatusSource, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		actor, ok := types.GetActor(ctx)
		if !ok || actor.IsPlatformAdmin() || actor.OrganizationID == "" {
			c.Next()
			return
		}

		eval, err := source.CurrentEvaluation(ctx)
		if err != nil {
			// billing lookups are a secondary read; fail open as a trial
			log.Errorw("failed to evaluate billing state for access gate",
				"error", err,
				"organization_id", actor.OrganizationID,
				"area", area)
			eval = &subscription.Evaluation{State: types.BillingStateTrial}
		}

		decision := Decide(area, *eval, actor.Role)
		c.Set(ContextKeyDecision, decision)
		if decision.Allowed {
			c.Next()
			return
		}

		message := "Your organization's subscription is suspended. Please contact your employer."
		if decision.CanPay {
			message = "Your subscription is suspended. Make a payment to restore access."
		}
		c.AbortWithStatusJSON(http.StatusPaymentRequired, SuspendedResponse{
			Success: false,
			Notice:  decision.Notice,
			CanPay:  decision.CanPay,
			Error: ierr.ErrorDetail{
				Display: message,
				Kind:    KindSuspended,
				Details: map[string]any{"suspension_reason": eval.SuspensionReason},
			},
		})
	}
}
