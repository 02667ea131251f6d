package models

import "time"

// Cart is the server-side mirror of a customer's cart, keyed by phone
// number. The browser copy remains the working copy; this document lets a
// returning customer pick the cart up on another device.
type Cart struct {
	Phone     string     `json:"phone" firestore:"phone"`
	Items     []CartItem `json:"items" firestore:"items"`
	UpdatedAt time.Time  `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// CartItem is one cart line. Lines are identified by product plus the
// chosen colour and module: the same product in a different colour is a
// separate line.
type CartItem struct {
	ProductID      string  `json:"productId" firestore:"productId"`
	Name           string  `json:"name" firestore:"name"`
	ImageURL       string  `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Price          float64 `json:"price" firestore:"price"`
	OriginalPrice  float64 `json:"originalPrice,omitempty" firestore:"originalPrice,omitempty"`
	Quantity       int     `json:"quantity" firestore:"quantity"`
	SelectedColor  string  `json:"selectedColor,omitempty" firestore:"selectedColor,omitempty"`
	SelectedModule string  `json:"selectedModule,omitempty" firestore:"selectedModule,omitempty"`

	// Service lines only.
	ServiceID   string  `json:"serviceId,omitempty" firestore:"serviceId,omitempty"`
	PackageTier string  `json:"packageTier,omitempty" firestore:"packageTier,omitempty"`
	AreaSqFt    float64 `json:"areaSqFt,omitempty" firestore:"areaSqFt,omitempty"`
}

// SameLine reports whether other belongs to the same cart line: identical
// product, colour and module selection.
func (i CartItem) SameLine(other CartItem) bool {
	return i.ProductID == other.ProductID &&
		i.SelectedColor == other.SelectedColor &&
		i.SelectedModule == other.SelectedModule
}

// CartTotals summarizes a cart for display.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Savings  float64 `json:"savings"`
	Count    int     `json:"count"`
}
