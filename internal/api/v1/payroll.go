package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	service service.PayrollService
	log     *logger.Logger
}

func NewPayrollHandler(service service.PayrollService, log *logger.Logger) *PayrollHandler {
	return &PayrollHandler{
		service: service,
		log:     log,
	}
}

// @Summary Run payroll for a period
// @Description Computes PAYE, NSSF, SHIF and housing levy for every live staff member. A rerun replaces the period.
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param run body dto.RunPayrollRequest true "Payroll run"
// @Success 200 {object} dto.PayrollResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /payroll/run [post]
func (h *PayrollHandler) RunPayroll(c *gin.Context) {
	var req dto.RunPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RunPayroll(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the payroll of a period
// @Tags Payroll
// @Produce json
// @Security BearerAuth
// @Param period query string true "Period as YYYY-MM"
// @Success 200 {object} dto.PayrollResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /payroll [get]
func (h *PayrollHandler) ListPayroll(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		c.Error(ierr.NewError("period is required").
			WithHint("Please provide a payroll period").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPayroll(c.Request.Context(), period)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
