package models

// AddToCartRequest represents the request body for adding a line to the cart.
type AddToCartRequest struct {
	ProductID      string  `json:"productId"`
	ServiceID      string  `json:"serviceId"`
	Name           string  `json:"name" binding:"required"`
	ImageURL       string  `json:"imageUrl"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"originalPrice"`
	Quantity       int     `json:"quantity"`
	SelectedColor  string  `json:"selectedColor"`
	SelectedModule string  `json:"selectedModule"`
	PackageTier    string  `json:"packageTier"`
	AreaSqFt       float64 `json:"areaSqFt"`
}

// UpdateCartItemRequest changes the quantity of an existing cart line.
type UpdateCartItemRequest struct {
	ProductID      string `json:"productId" binding:"required"`
	SelectedColor  string `json:"selectedColor"`
	SelectedModule string `json:"selectedModule"`
	Quantity       int    `json:"quantity" binding:"required"`
}

// RemoveCartItemRequest removes a cart line.
type RemoveCartItemRequest struct {
	ProductID      string `json:"productId" binding:"required"`
	SelectedColor  string `json:"selectedColor"`
	SelectedModule string `json:"selectedModule"`
}

// CreateOrderRequest represents the request body for placing an order.
// Totals are recomputed server-side; client-sent amounts are ignored.
type CreateOrderRequest struct {
	Items   []OrderItem `json:"items" binding:"required"`
	Address Address     `json:"address" binding:"required"`
	// BuyNow marks a single-line checkout that bypasses the stored cart.
	BuyNow bool `json:"buyNow"`
}

// VerifyPaymentRequest carries the confirmation fields delivered by the
// payment widget's handler callback. Field names follow the gateway's
// callback payload and are persisted verbatim onto the order.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// CreateLeadRequest represents the request body for capturing an enquiry.
type CreateLeadRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Message     string `json:"message"`
	Source      string `json:"source"`
}

// CreateAddressRequest represents the request body for adding an address.
type CreateAddressRequest struct {
	Door      string `json:"door"`
	Street    string `json:"street" binding:"required"`
	Area      string `json:"area"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
	Type      string `json:"type"`
	IsDefault bool   `json:"isDefault"`
}

// UpdateAddressRequest represents the request body for updating an address.
// Pointers distinguish empty values from fields not provided.
type UpdateAddressRequest struct {
	Door    *string `json:"door"`
	Street  *string `json:"street"`
	Area    *string `json:"area"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Pincode *string `json:"pincode"`
	Type    *string `json:"type"`
}

// QuoteRequest asks for a service price quote.
type QuoteRequest struct {
	ServiceID   string  `json:"serviceId" binding:"required"`
	PackageTier string  `json:"packageTier" binding:"required"`
	AreaSqFt    float64 `json:"areaSqFt"`
}
