package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
)

// GeocodeHandler handles the reverse and forward geocoding endpoints used
// by the delivery-location picker.
type GeocodeHandler struct {
	geocodeService core.GeocodeService
}

// NewGeocodeHandler creates a new GeocodeHandler.
func NewGeocodeHandler(gs core.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{geocodeService: gs}
}

func mapGeocodeErrorToStatus(c *gin.Context, err error) {
	if errors.Is(err, core.ErrGeocodeUnavailable) {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: core.ErrGeocodeUnavailable.Error()})
		return
	}
	log.Printf("Internal Server Error: %v", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
}

// Reverse handles GET /geocode/reverse?lat=&lon=
func (h *GeocodeHandler) Reverse(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameters 'lat' and 'lon' are required"})
		return
	}

	result, err := h.geocodeService.Reverse(c.Request.Context(), lat, lon)
	if err != nil {
		mapGeocodeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchPlaces handles GET /geocode/search?q=
func (h *GeocodeHandler) SearchPlaces(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'q' is required"})
		return
	}

	results, err := h.geocodeService.SearchPlaces(c.Request.Context(), query)
	if err != nil {
		mapGeocodeErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
