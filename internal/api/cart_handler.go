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

// CartHandler handles API endpoints for the customer's cart.
type CartHandler struct {
	cartService core.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cs core.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

// userPhone extracts the authenticated phone number from the context.
func userPhone(c *gin.Context) (string, bool) {
	phone := c.GetString(middleware.ContextUserPhone)
	if phone == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identity not found in context"})
		return "", false
	}
	return phone, true
}

// mapCartErrorToStatus maps errors from core.CartService to HTTP status codes.
func mapCartErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrCartItemNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrCartItemNotFound.Error()}
	case errors.Is(err, core.ErrInvalidQuantity):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrInvalidQuantity.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	cart, totals, err := h.cartService.GetCart(c.Request.Context(), phone)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Totals: totals})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), phone, req)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Totals: core.ComputeCartTotals(cart.Items)})
}

// UpdateItem handles PUT /cart/items
func (h *CartHandler) UpdateItem(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), phone, req)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Totals: core.ComputeCartTotals(cart.Items)})
}

// RemoveItem handles DELETE /cart/items
func (h *CartHandler) RemoveItem(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	var req models.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), phone, req)
	if err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, CartResponse{Cart: cart, Totals: core.ComputeCartTotals(cart.Items)})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), phone); err != nil {
		mapCartErrorToStatus(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
