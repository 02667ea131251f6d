package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
	"storefront-backend-go/internal/models"
)

// LeadHandler handles the enquiry capture endpoint. It is public: leads
// arrive from visitors who have not signed in.
type LeadHandler struct {
	leadService core.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(ls core.LeadService) *LeadHandler {
	return &LeadHandler{leadService: ls}
}

// CreateLead handles POST /leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req models.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), req)
	if err != nil {
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
		return
	}
	c.JSON(http.StatusCreated, lead)
}
