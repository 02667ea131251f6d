package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
	"storefront-backend-go/internal/middleware"
	"storefront-backend-go/internal/models"
)

// AccountHandler handles API endpoints for user profiles and addresses.
type AccountHandler struct {
	accountService core.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as core.AccountService) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// mapAccountErrorToStatus maps errors from core.AccountService to HTTP status codes.
func mapAccountErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrUserNotFound.Error()}
	case errors.Is(err, core.ErrAddressNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrAddressNotFound.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// InitializeProfile handles POST /users/initialize
// Called after client-side Firebase login to ensure the backend profile exists.
func (h *AccountHandler) InitializeProfile(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}
	displayName := c.GetString(middleware.ContextUserDisplayName)
	email := c.GetString(middleware.ContextUserEmail)

	user, err := h.accountService.InitializeProfile(c.Request.Context(), phone, displayName, email)
	if err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetProfile handles GET /users/me
func (h *AccountHandler) GetProfile(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	user, err := h.accountService.GetProfile(c.Request.Context(), phone)
	if err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListAddresses handles GET /addresses
func (h *AccountHandler) ListAddresses(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	addresses, err := h.accountService.ListAddresses(c.Request.Context(), phone)
	if err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

// CreateAddress handles POST /addresses
func (h *AccountHandler) CreateAddress(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	var req models.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	address, err := h.accountService.CreateAddress(c.Request.Context(), phone, req)
	if err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

// UpdateAddress handles PUT /addresses/:addressId
func (h *AccountHandler) UpdateAddress(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}
	addressID := c.Param("addressId")
	if addressID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Address ID is required"})
		return
	}

	var req models.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	address, err := h.accountService.UpdateAddress(c.Request.Context(), phone, addressID, req)
	if err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// DeleteAddress handles DELETE /addresses/:addressId
func (h *AccountHandler) DeleteAddress(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}
	addressID := c.Param("addressId")
	if addressID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Address ID is required"})
		return
	}

	if err := h.accountService.DeleteAddress(c.Request.Context(), phone, addressID); err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefaultAddress handles PUT /addresses/:addressId/default
func (h *AccountHandler) SetDefaultAddress(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}
	addressID := c.Param("addressId")
	if addressID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Address ID is required"})
		return
	}

	if err := h.accountService.SetDefaultAddress(c.Request.Context(), phone, addressID); err != nil {
		mapAccountErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Default address updated successfully"})
}
