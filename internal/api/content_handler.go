package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
)

// ContentHandler handles API endpoints for categories, banners and blogs.
type ContentHandler struct {
	contentService core.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(cs core.ContentService) *ContentHandler {
	return &ContentHandler{contentService: cs}
}

// ListCategories handles GET /categories
func (h *ContentHandler) ListCategories(c *gin.Context) {
	categories, err := h.contentService.Categories(c.Request.Context())
	if err != nil {
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListBanners handles GET /banners
func (h *ContentHandler) ListBanners(c *gin.Context) {
	banners, err := h.contentService.Banners(c.Request.Context())
	if err != nil {
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, banners)
}

// ListBlogs handles GET /blogs
func (h *ContentHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.contentService.Blogs(c.Request.Context(), queryLimit(c, 6))
	if err != nil {
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusOK, blogs)
}
