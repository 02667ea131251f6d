package models

import "time"

// Order statuses.
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// Order is a placed order with the shipping address snapshotted at
// checkout time and the payment-gateway identifiers persisted verbatim
// once the payment is confirmed.
type Order struct {
	ID            string      `json:"id" firestore:"-"`
	Phone         string      `json:"phone" firestore:"phone"`
	Items         []OrderItem `json:"items" firestore:"items"`
	Address       Address     `json:"address" firestore:"address"`
	Subtotal      float64     `json:"subtotal" firestore:"subtotal"`
	Total         float64     `json:"total" firestore:"total"`
	AdvanceAmount float64     `json:"advanceAmount,omitempty" firestore:"advanceAmount,omitempty"`
	Currency      string      `json:"currency" firestore:"currency"`
	Receipt       string      `json:"receipt" firestore:"receipt"`
	Status        string      `json:"status" firestore:"status"`

	RazorpayOrderID   string `json:"razorpayOrderId,omitempty" firestore:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string `json:"razorpayPaymentId,omitempty" firestore:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `json:"razorpaySignature,omitempty" firestore:"razorpaySignature,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// OrderItem is a cart line frozen into an order.
type OrderItem struct {
	ProductID      string  `json:"productId,omitempty" firestore:"productId,omitempty"`
	ServiceID      string  `json:"serviceId,omitempty" firestore:"serviceId,omitempty"`
	Name           string  `json:"name" firestore:"name"`
	ImageURL       string  `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Price          float64 `json:"price" firestore:"price"`
	Quantity       int     `json:"quantity" firestore:"quantity"`
	SelectedColor  string  `json:"selectedColor,omitempty" firestore:"selectedColor,omitempty"`
	SelectedModule string  `json:"selectedModule,omitempty" firestore:"selectedModule,omitempty"`
	PackageTier    string  `json:"packageTier,omitempty" firestore:"packageTier,omitempty"`
	AreaSqFt       float64 `json:"areaSqFt,omitempty" firestore:"areaSqFt,omitempty"`
}
