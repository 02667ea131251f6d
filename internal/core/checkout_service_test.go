package core

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// fakeGateway records the registered amount and accepts a fixed signature.
type fakeGateway struct {
	lastAmount int64
	validSig   string
}

func (f *fakeGateway) CreateGatewayOrder(amountPaise int64, _, _ string) (string, error) {
	f.lastAmount = amountPaise
	return "order_gw123", nil
}

func (f *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == f.validSig
}

// fakeOrderRepo keeps orders in memory.
type fakeOrderRepo struct {
	orders map[string]*models.Order
	nextID int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) (string, error) {
	f.nextID++
	order.ID = "ord" + string(rune('0'+f.nextID))
	f.orders[order.ID] = order
	return order.ID, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, orderID string) (*models.Order, error) {
	if o, ok := f.orders[orderID]; ok {
		return o, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeOrderRepo) GetByRazorpayOrderID(_ context.Context, razorpayOrderID string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.RazorpayOrderID == razorpayOrderID {
			return o, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeOrderRepo) ListByPhone(_ context.Context, phone string, _ int) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if o.Phone == phone {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdatePayment(_ context.Context, orderID, paymentID, signature, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return db.ErrNotFound
	}
	o.RazorpayPaymentID = paymentID
	o.RazorpaySignature = signature
	o.Status = status
	return nil
}

func newTestCheckoutService() (CheckoutService, *fakeOrderRepo, *fakeCartRepo, *fakeGateway) {
	orderRepo := newFakeOrderRepo()
	cartRepo := newFakeCartRepo()
	gw := &fakeGateway{validSig: "good-signature"}
	svc := NewCheckoutService(orderRepo, cartRepo, gw, nil, zap.NewNop())
	return svc, orderRepo, cartRepo, gw
}

func TestCreateOrderChargesProductsInFull(t *testing.T) {
	svc, _, _, gw := newTestCheckoutService()

	order, err := svc.CreateOrder(context.Background(), "+911234567890", models.CreateOrderRequest{
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1},
		},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
	})
	require.NoError(t, err)
	assert.Equal(t, 45000.0, order.Subtotal)
	assert.Equal(t, 45000.0, order.Total)
	assert.Equal(t, 0.0, order.AdvanceAmount)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Equal(t, "order_gw123", order.RazorpayOrderID)
	assert.Equal(t, int64(4500000), gw.lastAmount, "amount is registered in paise")
}

func TestCreateOrderChargesServiceAdvance(t *testing.T) {
	svc, _, _, gw := newTestCheckoutService()

	// 500 sq ft at 50/sq ft totals 25000; the booking advance is 2500.
	order, err := svc.CreateOrder(context.Background(), "+911234567890", models.CreateOrderRequest{
		Items: []models.OrderItem{
			{ServiceID: "s1", Name: "False Ceiling", Price: 25000, Quantity: 1, AreaSqFt: 500},
		},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
	})
	require.NoError(t, err)
	assert.Equal(t, 25000.0, order.Subtotal)
	assert.Equal(t, 2500.0, order.Total)
	assert.Equal(t, 2500.0, order.AdvanceAmount)
	assert.Equal(t, int64(250000), gw.lastAmount)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _, _ := newTestCheckoutService()

	_, err := svc.CreateOrder(context.Background(), "+911234567890", models.CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestCreateOrderClearsStoredCart(t *testing.T) {
	svc, _, cartRepo, _ := newTestCheckoutService()
	phone := "+911234567890"
	cartRepo.carts[phone] = &models.Cart{Phone: phone, Items: []models.CartItem{{ProductID: "p1", Quantity: 1}}}

	_, err := svc.CreateOrder(context.Background(), phone, models.CreateOrderRequest{
		Items:   []models.OrderItem{{ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1}},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
	})
	require.NoError(t, err)
	_, ok := cartRepo.carts[phone]
	assert.False(t, ok)
}

func TestCreateOrderBuyNowKeepsCart(t *testing.T) {
	svc, _, cartRepo, _ := newTestCheckoutService()
	phone := "+911234567890"
	cartRepo.carts[phone] = &models.Cart{Phone: phone, Items: []models.CartItem{{ProductID: "p2", Quantity: 1}}}

	_, err := svc.CreateOrder(context.Background(), phone, models.CreateOrderRequest{
		Items:   []models.OrderItem{{ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1}},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
		BuyNow:  true,
	})
	require.NoError(t, err)
	_, ok := cartRepo.carts[phone]
	assert.True(t, ok, "buy-now checkout leaves the stored cart alone")
}

func TestVerifyPaymentMarksOrderPaid(t *testing.T) {
	svc, repo, _, _ := newTestCheckoutService()
	phone := "+911234567890"

	created, err := svc.CreateOrder(context.Background(), phone, models.CreateOrderRequest{
		Items:   []models.OrderItem{{ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1}},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
	})
	require.NoError(t, err)

	order, err := svc.VerifyPayment(context.Background(), phone, models.VerifyPaymentRequest{
		RazorpayOrderID:   created.RazorpayOrderID,
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "good-signature",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, "pay_123", repo.orders[created.ID].RazorpayPaymentID)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	svc, repo, _, _ := newTestCheckoutService()
	phone := "+911234567890"

	created, err := svc.CreateOrder(context.Background(), phone, models.CreateOrderRequest{
		Items:   []models.OrderItem{{ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1}},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), phone, models.VerifyPaymentRequest{
		RazorpayOrderID:   created.RazorpayOrderID,
		RazorpayPaymentID: "pay_forged",
		RazorpaySignature: "forged",
	})
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	stored := repo.orders[created.ID]
	assert.Equal(t, models.OrderStatusCreated, stored.Status, "a forged callback must not change the order status")
	assert.Empty(t, stored.RazorpayPaymentID, "unverified payment fields are never persisted")
	assert.Empty(t, stored.RazorpaySignature)
}

func TestVerifyPaymentRejectsOtherCustomersOrder(t *testing.T) {
	svc, _, _, _ := newTestCheckoutService()

	created, err := svc.CreateOrder(context.Background(), "+911111111111", models.CreateOrderRequest{
		Items:   []models.OrderItem{{ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1}},
		Address: models.Address{Street: "1st Main", City: "Bengaluru", State: "Karnataka", Pincode: "560038"},
	})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), "+912222222222", models.VerifyPaymentRequest{
		RazorpayOrderID:   created.RazorpayOrderID,
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "good-signature",
	})
	assert.ErrorIs(t, err, ErrOrderNotOwned)
}

func TestRazorpaySignatureVerification(t *testing.T) {
	gw := &razorpayGateway{keySecret: "test-secret"}

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, gw.VerifySignature("order_abc", "pay_xyz", valid))
	assert.False(t, gw.VerifySignature("order_abc", "pay_xyz", "tampered"))
}
