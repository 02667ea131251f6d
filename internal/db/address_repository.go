package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront-backend-go/internal/models"
)

const (
	usersCollection        = "users"
	addressesSubcollection = "addresses"
)

// firestoreAddressRepository implements AddressRepository using the
// users/{phone}/addresses subcollection.
type firestoreAddressRepository struct {
	client *firestore.Client
}

// NewFirestoreAddressRepository creates a new instance of firestoreAddressRepository.
func NewFirestoreAddressRepository(client *firestore.Client) AddressRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AddressRepository.")
	}
	return &firestoreAddressRepository{client: client}
}

func (r *firestoreAddressRepository) addresses(phone string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(phone).Collection(addressesSubcollection)
}

// List returns all addresses for phone, default first.
func (r *firestoreAddressRepository) List(ctx context.Context, phone string) ([]*models.Address, error) {
	if phone == "" {
		return nil, errors.New("phone cannot be empty for List operation")
	}
	iter := r.addresses(phone).Documents(ctx)
	defer iter.Stop()

	var addresses []*models.Address
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate addresses for '%s': %w", phone, err)
		}

		var addr models.Address
		if err := doc.DataTo(&addr); err != nil {
			log.Printf("Error decoding address data (ID: %s) for '%s': %v. Skipping.", doc.Ref.ID, phone, err)
			continue
		}
		addr.ID = doc.Ref.ID
		if addr.IsDefault {
			addresses = append([]*models.Address{&addr}, addresses...)
		} else {
			addresses = append(addresses, &addr)
		}
	}
	return addresses, nil
}

// GetByID retrieves one address.
func (r *firestoreAddressRepository) GetByID(ctx context.Context, phone, addressID string) (*models.Address, error) {
	if phone == "" || addressID == "" {
		return nil, errors.New("phone and addressID are required for GetByID operation")
	}
	docSnap, err := r.addresses(phone).Doc(addressID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("address '%s' not found for '%s': %w", addressID, phone, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get address '%s' for '%s': %w", addressID, phone, err)
	}

	var addr models.Address
	if err := docSnap.DataTo(&addr); err != nil {
		return nil, fmt.Errorf("failed to decode address '%s' for '%s': %w", addressID, phone, err)
	}
	addr.ID = docSnap.Ref.ID
	return &addr, nil
}

// Create adds a new address with an auto-generated ID.
func (r *firestoreAddressRepository) Create(ctx context.Context, phone string, address *models.Address) (string, error) {
	if phone == "" {
		return "", errors.New("phone cannot be empty for Create operation")
	}
	docRef := r.addresses(phone).NewDoc()
	address.ID = docRef.ID

	_, err := docRef.Create(ctx, address)
	if err != nil {
		return "", fmt.Errorf("failed to create address for '%s': %w", phone, err)
	}
	return docRef.ID, nil
}

// Update overwrites an existing address using MergeAll for partial updates.
func (r *firestoreAddressRepository) Update(ctx context.Context, phone string, address *models.Address) error {
	if phone == "" || address == nil || address.ID == "" {
		return errors.New("phone and address with ID are required for Update operation")
	}
	_, err := r.addresses(phone).Doc(address.ID).Set(ctx, address, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update address '%s' for '%s': %w", address.ID, phone, err)
	}
	return nil
}

// Delete removes an address.
func (r *firestoreAddressRepository) Delete(ctx context.Context, phone, addressID string) error {
	if phone == "" || addressID == "" {
		return errors.New("phone and addressID are required for Delete operation")
	}
	_, err := r.addresses(phone).Doc(addressID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("address '%s' not found for deletion: %w", addressID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete address '%s' for '%s': %w", addressID, phone, err)
	}
	return nil
}

// SetDefault marks addressID as the default and clears the flag on every
// sibling in a single batched write, so there is never more than one
// default address.
func (r *firestoreAddressRepository) SetDefault(ctx context.Context, phone, addressID string) error {
	if phone == "" || addressID == "" {
		return errors.New("phone and addressID are required for SetDefault operation")
	}

	iter := r.addresses(phone).Documents(ctx)
	defer iter.Stop()

	batch := r.client.Batch()
	found := false
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to iterate addresses for '%s': %w", phone, err)
		}
		isTarget := doc.Ref.ID == addressID
		if isTarget {
			found = true
		}
		batch.Update(doc.Ref, []firestore.Update{{Path: "isDefault", Value: isTarget}})
	}
	if !found {
		return fmt.Errorf("address '%s' not found for '%s': %w", addressID, phone, ErrNotFound)
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to set default address '%s' for '%s': %w", addressID, phone, err)
	}
	return nil
}

// Count returns the number of addresses stored for phone.
func (r *firestoreAddressRepository) Count(ctx context.Context, phone string) (int, error) {
	if phone == "" {
		return 0, errors.New("phone cannot be empty for Count operation")
	}
	iter := r.addresses(phone).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to count addresses for '%s': %w", phone, err)
		}
		count++
	}
	return count, nil
}
