package cron

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

// BillingHandler runs the scheduled billing jobs
type BillingHandler struct {
	billingService service.BillingService
	paymentService service.PaymentService
	logger         *logger.Logger
}

func NewBillingHandler(
	billingService service.BillingService,
	paymentService service.PaymentService,
	logger *logger.Logger,
) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		paymentService: paymentService,
		logger:         logger,
	}
}

// ReconcileStates persists the effective billing state of every subscription
func (h *BillingHandler) ReconcileStates(c *gin.Context) {
	h.logger.Infow("starting billing reconciliation cron job")

	response, err := h.billingService.ReconcileStates(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to reconcile billing states",
			"error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed billing reconciliation cron job")
	c.JSON(http.StatusOK, response)
}

// ProcessAutoPayRenewals pushes M-Pesa prompts for auto pay subscriptions due within a day
func (h *BillingHandler) ProcessAutoPayRenewals(c *gin.Context) {
	h.logger.Infow("starting auto pay renewal cron job")

	response, err := h.paymentService.ProcessAutoPayRenewals(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to process auto pay renewals",
			"error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed auto pay renewal cron job")
	c.JSON(http.StatusOK, response)
}
