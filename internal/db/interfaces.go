package db

import (
	"context"

	"storefront-backend-go/internal/models"
)

// ProductRepository defines read access to the products collection.
type ProductRepository interface {
	GetByID(ctx context.Context, productID string) (*models.Product, error)
	// List returns products, optionally filtered by category, newest first.
	// limit <= 0 means no limit.
	List(ctx context.Context, category string, limit int) ([]*models.Product, error)
	// Related returns up to limit products sharing category, excluding excludeID.
	Related(ctx context.Context, category, excludeID string, limit int) ([]*models.Product, error)
}

// ServiceRepository defines read access to the services collection.
type ServiceRepository interface {
	GetByID(ctx context.Context, serviceID string) (*models.Service, error)
	List(ctx context.Context, category string, limit int) ([]*models.Service, error)
	Related(ctx context.Context, category, excludeID string, limit int) ([]*models.Service, error)
}

// ContentRepository defines read access to categories, banners and blogs.
type ContentRepository interface {
	Categories(ctx context.Context) ([]*models.Category, error)
	Banners(ctx context.Context) ([]*models.Banner, error)
	Blogs(ctx context.Context, limit int) ([]*models.Blog, error)
}

// CartRepository persists the per-customer cart mirror.
type CartRepository interface {
	Get(ctx context.Context, phone string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, phone string) error
}

// OrderRepository defines order storage operations.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error) // Returns new order ID
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error)
	ListByPhone(ctx context.Context, phone string, limit int) ([]*models.Order, error)
	UpdatePayment(ctx context.Context, orderID, paymentID, signature, status string) error
}

// AddressRepository manages the users/{phone}/addresses subcollection.
type AddressRepository interface {
	List(ctx context.Context, phone string) ([]*models.Address, error)
	GetByID(ctx context.Context, phone, addressID string) (*models.Address, error)
	Create(ctx context.Context, phone string, address *models.Address) (string, error)
	Update(ctx context.Context, phone string, address *models.Address) error
	Delete(ctx context.Context, phone, addressID string) error
	// SetDefault marks addressID default and clears the flag on siblings
	// in a single batched write.
	SetDefault(ctx context.Context, phone, addressID string) error
	Count(ctx context.Context, phone string) (int, error)
}

// LeadRepository defines lead storage plus the sequence machinery for
// human-readable lead identifiers.
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) (string, error)
	// NextSequence transactionally increments the financial-year counter,
	// seeding it from a scan of existing leads when absent.
	NextSequence(ctx context.Context, fyKey string) (int64, error)
	ExistsByLeadID(ctx context.Context, leadID string) (bool, error)
}

// UserRepository defines user profile storage operations.
type UserRepository interface {
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}
