package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
)

// SearchHandler handles the catalog search endpoint.
type SearchHandler struct {
	searchService core.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(ss core.SearchService) *SearchHandler {
	return &SearchHandler{searchService: ss}
}

// Search handles GET /search?q=
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Query parameter 'q' is required"})
		return
	}

	results, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, results)
}
