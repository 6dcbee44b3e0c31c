package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	service service.OrganizationService
	log     *logger.Logger
}

func NewOrganizationHandler(service service.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Sign up an organization
// @Description Create an organization with its first location, the owner profile and a trial subscription
// @Tags Organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organization body dto.SignupRequest true "Organization"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /organizations [post]
func (h *OrganizationHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get the current organization
// @Tags Organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /organization [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	resp, err := h.service.GetOrganization(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update the current organization
// @Tags Organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organization body dto.UpdateOrganizationRequest true "Organization"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /organization [put]
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateOrganization(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Submit the facility licence for verification
// @Tags Organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param verification body dto.SubmitVerificationRequest true "Verification"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /organization/verification [post]
func (h *OrganizationHandler) SubmitVerification(c *gin.Context) {
	var req dto.SubmitVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SubmitVerification(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List organizations awaiting verification
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} types.ListResponse[dto.OrganizationResponse]
// @Failure 403 {object} ierr.ErrorResponse
// @Router /admin/organizations/verifications [get]
func (h *OrganizationHandler) ListPendingVerifications(c *gin.Context) {
	resp, err := h.service.ListPendingVerifications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Approve or reject an organization's verification
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param review body dto.ReviewVerificationRequest true "Review"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /admin/organizations/{id}/verification [post]
func (h *OrganizationHandler) ReviewVerification(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("organization ID is required").
			WithHint("Please provide an organization ID").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.ReviewVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ReviewVerification(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
