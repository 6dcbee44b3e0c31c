package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	service service.StaffService
	log     *logger.Logger
}

func NewStaffHandler(service service.StaffService, log *logger.Logger) *StaffHandler {
	return &StaffHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a staff member
// @Description Admin and owner roles hold an admin seat and are refused once the plan's seats are taken
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staff body dto.CreateStaffRequest true "Staff"
// @Success 201 {object} staff.Staff
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateStaff(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List staff
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param filter query dto.ListStaffRequest false "Filter"
// @Success 200 {object} dto.ListStaffResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /staff [get]
func (h *StaffHandler) ListStaff(c *gin.Context) {
	var req dto.ListStaffRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListStaff(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get own staff profile
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} staff.Staff
// @Failure 404 {object} ierr.ErrorResponse
// @Router /staff/me [get]
func (h *StaffHandler) GetCurrentStaff(c *gin.Context) {
	resp, err := h.service.GetCurrentStaff(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a staff member
// @Tags Staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 200 {object} staff.Staff
// @Failure 404 {object} ierr.ErrorResponse
// @Router /staff/{id} [get]
func (h *StaffHandler) GetStaff(c *gin.Context) {
	resp, err := h.service.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param staff body dto.UpdateStaffRequest true "Staff"
// @Success 200 {object} staff.Staff
// @Failure 400 {object} ierr.ErrorResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateStaff(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign a role to a staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Param role body dto.AssignRoleRequest true "Role"
// @Success 200 {object} staff.Staff
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /staff/{id}/role [put]
func (h *StaffHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AssignRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Archive a staff member
// @Tags Staff
// @Security BearerAuth
// @Param id path string true "Staff ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /staff/{id} [delete]
func (h *StaffHandler) ArchiveStaff(c *gin.Context) {
	if err := h.service.ArchiveStaff(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
