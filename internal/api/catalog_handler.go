package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
	"storefront-backend-go/internal/models"
)

// CatalogHandler handles API endpoints for products, services and quotes.
type CatalogHandler struct {
	catalogService core.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs core.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// mapCatalogErrorToStatus maps errors from core.CatalogService to HTTP status codes.
func mapCatalogErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrProductNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrProductNotFound.Error()}
	case errors.Is(err, core.ErrServiceNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrServiceNotFound.Error()}
	case errors.Is(err, core.ErrUnknownTier):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrUnknownTier.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// queryLimit parses the limit query parameter, returning def when absent
// or unparsable.
func queryLimit(c *gin.Context, def int) int {
	raw := c.Query("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return def
	}
	return limit
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), c.Query("category"), queryLimit(c, 0))
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:productId
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product ID is required"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetRelated handles GET /products/:productId/related
func (h *CatalogHandler) GetRelated(c *gin.Context) {
	productID := c.Param("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product ID is required"})
		return
	}

	related, err := h.catalogService.Related(c.Request.Context(), productID)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, related)
}

// ListServices handles GET /services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context(), c.Query("category"), queryLimit(c, 0))
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService handles GET /services/:serviceId
func (h *CatalogHandler) GetService(c *gin.Context) {
	serviceID := c.Param("serviceId")
	if serviceID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Service ID is required"})
		return
	}

	service, err := h.catalogService.GetService(c.Request.Context(), serviceID)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// QuoteService handles POST /services/quote
func (h *CatalogHandler) QuoteService(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	quote, err := h.catalogService.QuoteService(c.Request.Context(), req)
	if err != nil {
		mapCatalogErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
