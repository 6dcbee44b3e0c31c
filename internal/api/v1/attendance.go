package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	service service.AttendanceService
	log     *logger.Logger
}

func NewAttendanceHandler(service service.AttendanceService, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Clock in
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clock_in body dto.ClockInRequest true "Clock in"
// @Success 201 {object} attendance.Record
// @Failure 400 {object} ierr.ErrorResponse
// @Router /attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ClockIn(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Clock out
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} attendance.Record
// @Failure 400 {object} ierr.ErrorResponse
// @Router /attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	resp, err := h.service.ClockOut(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param staff_id query string false "Staff ID"
// @Success 200 {object} dto.ListAttendanceResponse
// @Router /attendance [get]
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	resp, err := h.service.ListAttendance(c.Request.Context(), c.Query("staff_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
