package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	service service.BillingService
	usage   service.UsageService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, usage service.UsageService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		usage:   usage,
		log:     log,
	}
}

// @Summary Get billing status
// @Description Get the effective billing state, plan and upcoming due date of the current organization
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BillingStatusResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /billing [get]
func (h *BillingHandler) GetBillingStatus(c *gin.Context) {
	resp, err := h.service.GetBillingStatus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Set payment mode
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mode body dto.SetPaymentModeRequest true "Payment mode"
// @Success 200 {object} subscription.Subscription
// @Failure 400 {object} ierr.ErrorResponse
// @Router /billing/payment-mode [put]
func (h *BillingHandler) SetPaymentMode(c *gin.Context) {
	var req dto.SetPaymentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SetPaymentMode(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Change plan
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body dto.ChangePlanRequest true "Plan"
// @Success 200 {object} dto.BillingStatusResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /billing/plan [put]
func (h *BillingHandler) ChangePlan(c *gin.Context) {
	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ChangePlan(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List billing log entries
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListBillingLogsResponse
// @Router /billing/logs [get]
func (h *BillingHandler) ListBillingLogs(c *gin.Context) {
	resp, err := h.service.ListBillingLogs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get plan usage
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UsageResponse
// @Router /billing/usage [get]
func (h *BillingHandler) GetUsage(c *gin.Context) {
	resp, err := h.usage.GetUsage(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Simulate a payment
// @Description Development only. Settles the current cycle without a provider.
// @Tags Billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payment body dto.SimulatePaymentRequest true "Simulation"
// @Success 200 {object} dto.BillingStatusResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /billing/simulate [post]
func (h *BillingHandler) SimulatePayment(c *gin.Context) {
	var req dto.SimulatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SimulatePayment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reset the trial
// @Description Development only
// @Tags Billing
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BillingStatusResponse
// @Router /billing/reset-trial [post]
func (h *BillingHandler) ResetTrial(c *gin.Context) {
	resp, err := h.service.ResetTrial(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reactivate an organization
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param reactivation body dto.ReactivateRequest true "Reactivation"
// @Success 200 {object} subscription.Subscription
// @Failure 403 {object} ierr.ErrorResponse
// @Router /admin/organizations/{id}/reactivate [post]
func (h *BillingHandler) Reactivate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization ID is required").
			WithHint("Please provide an organization ID").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.ReactivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Reactivate(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
