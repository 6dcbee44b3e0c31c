package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type LeaveHandler struct {
	service service.LeaveService
	log     *logger.Logger
}

func NewLeaveHandler(service service.LeaveService, log *logger.Logger) *LeaveHandler {
	return &LeaveHandler{
		service: service,
		log:     log,
	}
}

// @Summary Submit a leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param leave body dto.SubmitLeaveRequest true "Leave"
// @Success 201 {object} leave.Request
// @Failure 400 {object} ierr.ErrorResponse
// @Router /leave [post]
func (h *LeaveHandler) SubmitLeave(c *gin.Context) {
	var req dto.SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SubmitLeave(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List leave requests
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param filter query dto.ListLeaveRequest false "Filter"
// @Success 200 {object} dto.ListLeaveResponse
// @Router /leave [get]
func (h *LeaveHandler) ListLeave(c *gin.Context) {
	var req dto.ListLeaveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListLeave(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Approve a leave request
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} leave.Request
// @Failure 400 {object} ierr.ErrorResponse
// @Router /leave/{id}/approve [post]
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	resp, err := h.service.ApproveLeave(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reject a leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param rejection body dto.RejectLeaveRequest true "Rejection"
// @Success 200 {object} leave.Request
// @Failure 400 {object} ierr.ErrorResponse
// @Router /leave/{id}/reject [post]
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	var req dto.RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RejectLeave(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a leave request
// @Tags Leave
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Success 200 {object} leave.Request
// @Failure 400 {object} ierr.ErrorResponse
// @Router /leave/{id}/cancel [post]
func (h *LeaveHandler) CancelLeave(c *gin.Context) {
	resp, err := h.service.CancelLeave(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
