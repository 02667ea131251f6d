package core

import (
	"context"

	"storefront-backend-go/internal/models"
)

// CatalogService serves product and service reads plus derived pricing.
type CatalogService interface {
	ListProducts(ctx context.Context, category string, limit int) ([]*models.Product, error)
	GetProduct(ctx context.Context, productID string) (*ProductDetail, error)
	Related(ctx context.Context, productID string) (*RelatedItems, error)
	ListServices(ctx context.Context, category string, limit int) ([]*models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
	QuoteService(ctx context.Context, req models.QuoteRequest) (*Quote, error)
}

// ContentService serves categories, banners and blog teasers.
type ContentService interface {
	Categories(ctx context.Context) ([]*models.Category, error)
	Banners(ctx context.Context) ([]*models.Banner, error)
	Blogs(ctx context.Context, limit int) ([]*models.Blog, error)
}

// CartService manages the per-customer cart mirror.
type CartService interface {
	GetCart(ctx context.Context, phone string) (*models.Cart, models.CartTotals, error)
	AddItem(ctx context.Context, phone string, req models.AddToCartRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, phone string, req models.UpdateCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, phone string, req models.RemoveCartItemRequest) (*models.Cart, error)
	Clear(ctx context.Context, phone string) error
}

// CheckoutService places orders and reconciles payment confirmations.
type CheckoutService interface {
	CreateOrder(ctx context.Context, phone string, req models.CreateOrderRequest) (*models.Order, error)
	VerifyPayment(ctx context.Context, phone string, req models.VerifyPaymentRequest) (*models.Order, error)
	GetOrder(ctx context.Context, phone, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context, phone string, limit int) ([]*models.Order, error)
}

// LeadService captures product enquiries with sequential identifiers.
type LeadService interface {
	CreateLead(ctx context.Context, req models.CreateLeadRequest) (*models.Lead, error)
}

// SearchService ranks the catalog against a free-text query.
type SearchService interface {
	Search(ctx context.Context, query string) ([]*models.Product, error)
}

// GeocodeService wraps the reverse and forward geocoding calls.
type GeocodeService interface {
	Reverse(ctx context.Context, lat, lon string) (*GeocodeResult, error)
	SearchPlaces(ctx context.Context, query string) ([]GeocodeResult, error)
}

// AccountService manages user profiles and address books.
type AccountService interface {
	InitializeProfile(ctx context.Context, phone, displayName, email string) (*models.User, error)
	GetProfile(ctx context.Context, phone string) (*models.User, error)
	ListAddresses(ctx context.Context, phone string) ([]*models.Address, error)
	CreateAddress(ctx context.Context, phone string, req models.CreateAddressRequest) (*models.Address, error)
	UpdateAddress(ctx context.Context, phone, addressID string, req models.UpdateAddressRequest) (*models.Address, error)
	DeleteAddress(ctx context.Context, phone, addressID string) error
	SetDefaultAddress(ctx context.Context, phone, addressID string) error
}
