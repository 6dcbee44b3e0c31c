package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

// @Summary Schedule a shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shift body dto.CreateShiftRequest true "Shift"
// @Success 201 {object} schedule.Shift
// @Failure 400 {object} ierr.ErrorResponse
// @Router /shifts [post]
func (h *ScheduleHandler) CreateShift(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateShift(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List shifts
// @Tags Shifts
// @Produce json
// @Security BearerAuth
// @Param filter query dto.ListShiftsRequest false "Filter"
// @Success 200 {object} dto.ListShiftsResponse
// @Router /shifts [get]
func (h *ScheduleHandler) ListShifts(c *gin.Context) {
	var req dto.ListShiftsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListShifts(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a shift
// @Tags Shifts
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Router /shifts/{id} [delete]
func (h *ScheduleHandler) DeleteShift(c *gin.Context) {
	if err := h.service.DeleteShift(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
