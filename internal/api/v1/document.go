package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service service.DocumentService
	log     *logger.Logger
}

func NewDocumentHandler(service service.DocumentService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		log:     log,
	}
}

// @Summary Publish a policy document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param document body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} document.PolicyDocument
// @Failure 400 {object} ierr.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateDocument(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List policy documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListDocumentsResponse
// @Router /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	resp, err := h.service.ListDocuments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List documents a staff member has not acknowledged
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param staff_id query string false "Staff ID, defaults to the caller"
// @Success 200 {object} dto.ListDocumentsResponse
// @Router /documents/pending [get]
func (h *DocumentHandler) PendingForStaff(c *gin.Context) {
	resp, err := h.service.PendingForStaff(c.Request.Context(), c.Query("staff_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Acknowledge a policy document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} document.Acknowledgement
// @Failure 404 {object} ierr.ErrorResponse
// @Router /documents/{id}/acknowledge [post]
func (h *DocumentHandler) Acknowledge(c *gin.Context) {
	resp, err := h.service.Acknowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List acknowledgements of a policy document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} dto.ListAcknowledgementsResponse
// @Router /documents/{id}/acknowledgements [get]
func (h *DocumentHandler) ListAcknowledgements(c *gin.Context) {
	resp, err := h.service.ListAcknowledgements(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
