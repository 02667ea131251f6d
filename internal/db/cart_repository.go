package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront-backend-go/internal/models"
)

const cartsCollection = "carts"

// firestoreCartRepository implements CartRepository using Firestore.
// One document per customer, keyed by phone number.
type firestoreCartRepository struct {
	client *firestore.Client
}

// NewFirestoreCartRepository creates a new instance of firestoreCartRepository.
func NewFirestoreCartRepository(client *firestore.Client) CartRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CartRepository.")
	}
	return &firestoreCartRepository{client: client}
}

// Get retrieves the cart mirror for phone. A customer without a stored
// cart gets an empty one rather than an error.
func (r *firestoreCartRepository) Get(ctx context.Context, phone string) (*models.Cart, error) {
	if phone == "" {
		return nil, errors.New("phone cannot be empty for Get operation")
	}
	docSnap, err := r.client.Collection(cartsCollection).Doc(phone).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &models.Cart{Phone: phone}, nil
		}
		return nil, fmt.Errorf("failed to get cart for '%s': %w", phone, err)
	}

	var cart models.Cart
	if err := docSnap.DataTo(&cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart for '%s': %w", phone, err)
	}
	cart.Phone = phone
	return &cart, nil
}

// Save overwrites the cart mirror for cart.Phone.
func (r *firestoreCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart == nil || cart.Phone == "" {
		return errors.New("cart with phone is required for Save operation")
	}
	_, err := r.client.Collection(cartsCollection).Doc(cart.Phone).Set(ctx, cart)
	if err != nil {
		return fmt.Errorf("failed to save cart for '%s': %w", cart.Phone, err)
	}
	return nil
}

// Delete removes the cart mirror for phone.
func (r *firestoreCartRepository) Delete(ctx context.Context, phone string) error {
	if phone == "" {
		return errors.New("phone cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(cartsCollection).Doc(phone).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete cart for '%s': %w", phone, err)
	}
	return nil
}
