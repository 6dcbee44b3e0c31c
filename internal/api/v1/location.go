package v1

import (
	"net/http"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/service"
	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	service service.LocationService
	log     *logger.Logger
}

func NewLocationHandler(service service.LocationService, log *logger.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a location
// @Tags Locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location body dto.CreateLocationRequest true "Location"
// @Success 201 {object} location.Location
// @Failure 400 {object} ierr.ErrorResponse
// @Router /locations [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List locations
// @Tags Locations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListLocationsResponse
// @Router /locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	resp, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Archive a location
// @Tags Locations
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /locations/{id} [delete]
func (h *LocationHandler) ArchiveLocation(c *gin.Context) {
	if err := h.service.ArchiveLocation(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
