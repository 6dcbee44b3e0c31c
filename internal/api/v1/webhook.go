package v1

import (
	"io"
	"net/http"

	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

// MpesaAck is the body Daraja expects back from a result callback
type MpesaAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

type WebhookHandler struct {
	payments service.PaymentService
	logger   *logger.Logger
}

func NewWebhookHandler(payments service.PaymentService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		payments: payments,
		logger:   logger,
	}
}

// @Summary Handle M-Pesa STK push callbacks
// @Description Settles the payment referenced by the callback. Always acknowledged so Daraja stops retrying.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 200 {object} MpesaAck
// @Router /webhooks/mpesa [post]
func (h *WebhookHandler) HandleMpesaCallback(c *gin.Context) {
	defer c.JSON(http.StatusOK, MpesaAck{ResultCode: 0, ResultDesc: "Accepted"})

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read mpesa callback body", "error", err)
		return
	}

	p, err := h.payments.HandleMpesaCallback(c.Request.Context(), body)
	if err != nil {
		h.logger.Errorw("failed to process mpesa callback",
			"error", err,
			"payload_length", len(body))
		return
	}
	if p == nil {
		return
	}

	h.logger.Infow("mpesa callback processed",
		"payment_id", p.ID,
		"organization_id", p.OrganizationID,
		"status", p.Status)
}

// @Summary Handle Stripe webhook events
// @Description Verifies the signature and settles completed or expired checkout sessions
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe webhook signature"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Failed to read request body").
			Mark(ierr.ErrValidation))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.Error(ierr.NewError("missing Stripe-Signature header").
			WithHint("Missing Stripe-Signature header").
			Mark(ierr.ErrValidation))
		return
	}

	h.logger.Debugw("processing stripe webhook", "payload_length", len(body))

	if _, err := h.payments.HandleStripeWebhook(c.Request.Context(), body, signature); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed successfully"})
}
