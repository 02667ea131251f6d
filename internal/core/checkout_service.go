package core

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/events"
	"storefront-backend-go/internal/models"
)

// Custom errors for the CheckoutService.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotOwned      = errors.New("order does not belong to this customer")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// PaymentGateway abstracts the payment provider. CreateGatewayOrder
// registers an amount with the provider and returns the provider's order
// ID, which the browser widget needs to open the payment sheet.
type PaymentGateway interface {
	CreateGatewayOrder(amountPaise int64, currency, receipt string) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// razorpayGateway implements PaymentGateway against the Razorpay Orders API.
type razorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

// NewRazorpayGateway creates a PaymentGateway backed by Razorpay.
func NewRazorpayGateway(keyID, keySecret string) PaymentGateway {
	return &razorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

func (g *razorpayGateway) CreateGatewayOrder(amountPaise int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: order response missing id", ErrGatewayUnavailable)
	}
	return id, nil
}

// VerifySignature checks the checkout callback signature, which is
// HMAC-SHA256 of "<order_id>|<payment_id>" under the key secret.
func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// checkoutService implements the CheckoutService interface.
type checkoutService struct {
	orderRepo db.OrderRepository
	cartRepo  db.CartRepository
	gateway   PaymentGateway
	publisher events.Publisher // may be nil
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(or db.OrderRepository, cr db.CartRepository, gw PaymentGateway, pub events.Publisher, logger *zap.Logger) CheckoutService {
	return &checkoutService{
		orderRepo: or,
		cartRepo:  cr,
		gateway:   gw,
		publisher: pub,
		logger:    logger,
	}
}

// CreateOrder recomputes totals server-side, registers the payable amount
// with the payment gateway and persists the order in "created" state.
// Service lines are charged their booking advance; product lines are
// charged in full.
func (s *checkoutService) CreateOrder(ctx context.Context, phone string, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	var subtotal, payable, advance float64
	for _, item := range req.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := item.Price * float64(qty)
		subtotal += lineTotal
		if item.ServiceID != "" {
			// Service lines only collect the booking advance up front.
			lineAdvance := AdvanceAmount(lineTotal)
			payable += lineAdvance
			advance += lineAdvance
		} else {
			payable += lineTotal
		}
	}

	receipt := "rcpt_" + uuid.NewString()
	amountPaise := int64(math.Round(payable * 100))
	gatewayOrderID, err := s.gateway.CreateGatewayOrder(amountPaise, "INR", receipt)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Phone:           phone,
		Items:           req.Items,
		Address:         req.Address,
		Subtotal:        subtotal,
		Total:           payable,
		AdvanceAmount:   advance,
		Currency:        "INR",
		Receipt:         receipt,
		Status:          models.OrderStatusCreated,
		RazorpayOrderID: gatewayOrderID,
	}
	if _, err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// A buy-now checkout never touched the stored cart, so only clear it
	// for regular cart checkouts.
	if !req.BuyNow {
		if err := s.cartRepo.Delete(ctx, phone); err != nil {
			s.logger.Warn("failed to clear cart after checkout", zap.String("phone", phone), zap.Error(err))
		}
	}

	s.publishOrderEvent(events.TopicOrderPlaced, order)
	return order, nil
}

// VerifyPayment validates the gateway callback and marks the order paid.
// The callback fields are persisted onto the order only after the
// signature checks out; a mismatch leaves the stored order untouched.
func (s *checkoutService) VerifyPayment(ctx context.Context, phone string, req models.VerifyPaymentRequest) (*models.Order, error) {
	order, err := s.orderRepo.GetByRazorpayOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: gateway order '%s'", ErrOrderNotFound, req.RazorpayOrderID)
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if order.Phone != phone {
		return nil, ErrOrderNotOwned
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.logger.Warn("payment signature mismatch",
			zap.String("orderId", order.ID),
			zap.String("razorpayOrderId", req.RazorpayOrderID))
		return nil, ErrSignatureMismatch
	}

	if err := s.orderRepo.UpdatePayment(ctx, order.ID, req.RazorpayPaymentID, req.RazorpaySignature, models.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	order.RazorpayPaymentID = req.RazorpayPaymentID
	order.RazorpaySignature = req.RazorpaySignature
	order.Status = models.OrderStatusPaid

	s.publishOrderEvent(events.TopicOrderPaid, order)
	return order, nil
}

// GetOrder returns one of the customer's orders.
func (s *checkoutService) GetOrder(ctx context.Context, phone, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to get order '%s': %w", orderID, err)
	}
	if order.Phone != phone {
		return nil, ErrOrderNotOwned
	}
	return order, nil
}

// ListOrders returns the customer's orders, newest first.
func (s *checkoutService) ListOrders(ctx context.Context, phone string, limit int) ([]*models.Order, error) {
	orders, err := s.orderRepo.ListByPhone(ctx, phone, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *checkoutService) publishOrderEvent(topic string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderId": order.ID,
		"phone":   order.Phone,
		"total":   order.Total,
		"status":  order.Status,
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(topic, body); err != nil {
		s.logger.Warn("failed to publish order event", zap.String("orderId", order.ID), zap.Error(err))
	}
}
