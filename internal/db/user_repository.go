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

// firestoreUserRepository implements UserRepository using Firestore.
// The phone number is the document ID.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// GetByPhone retrieves a user profile by phone number.
func (r *firestoreUserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	if phone == "" {
		return nil, errors.New("phone cannot be empty for GetByPhone operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(phone).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user '%s' not found: %w", phone, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", phone, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for '%s': %w", phone, err)
	}
	user.Phone = docSnap.Ref.ID
	return &user, nil
}

// Upsert creates or merges the profile document for user.Phone.
func (r *firestoreUserRepository) Upsert(ctx context.Context, user *models.User) error {
	if user == nil || user.Phone == "" {
		return errors.New("user with phone is required for Upsert operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.Phone).Set(ctx, user, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to upsert user '%s': %w", user.Phone, err)
	}
	return nil
}
