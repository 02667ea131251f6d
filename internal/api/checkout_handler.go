package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend-go/internal/core"
	"storefront-backend-go/internal/models"
)

// CheckoutHandler handles API endpoints for orders and payment verification.
type CheckoutHandler struct {
	checkoutService core.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(cs core.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: cs}
}

// mapCheckoutErrorToStatus maps errors from core.CheckoutService to HTTP status codes.
func mapCheckoutErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrOrderNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrOrderNotFound.Error()}
	case errors.Is(err, core.ErrOrderNotOwned):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrOrderNotOwned.Error()}
	case errors.Is(err, core.ErrEmptyOrder):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrEmptyOrder.Error()}
	case errors.Is(err, core.ErrSignatureMismatch):
		// The widget reported a payment the gateway never signed off on.
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: core.ErrSignatureMismatch.Error()}
	case errors.Is(err, core.ErrGatewayUnavailable):
		statusCode = http.StatusBadGateway
		errResponse = ErrorResponse{Error: core.ErrGatewayUnavailable.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// CreateOrder handles POST /checkout/orders
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	order, err := h.checkoutService.CreateOrder(c.Request.Context(), phone, req)
	if err != nil {
		mapCheckoutErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// VerifyPayment handles POST /checkout/verify
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	order, err := h.checkoutService.VerifyPayment(c.Request.Context(), phone, req)
	if err != nil {
		mapCheckoutErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrder handles GET /orders/:orderId
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}
	orderID := c.Param("orderId")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Order ID is required"})
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), phone, orderID)
	if err != nil {
		mapCheckoutErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders
func (h *CheckoutHandler) ListOrders(c *gin.Context) {
	phone, ok := userPhone(c)
	if !ok {
		return
	}

	orders, err := h.checkoutService.ListOrders(c.Request.Context(), phone, queryLimit(c, 20))
	if err != nil {
		mapCheckoutErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
