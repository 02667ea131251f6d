package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront-backend-go/internal/models"
)

const servicesCollection = "services"

// firestoreServiceRepository implements ServiceRepository using Firestore.
type firestoreServiceRepository struct {
	client *firestore.Client
}

// NewFirestoreServiceRepository creates a new instance of firestoreServiceRepository.
func NewFirestoreServiceRepository(client *firestore.Client) ServiceRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ServiceRepository.")
	}
	return &firestoreServiceRepository{client: client}
}

// GetByID retrieves a service document from Firestore by its ID.
func (r *firestoreServiceRepository) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	if serviceID == "" {
		return nil, errors.New("serviceID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(servicesCollection).Doc(serviceID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("service with ID '%s' not found: %w", serviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service with ID '%s': %w", serviceID, err)
	}
	return models.ServiceFromDoc(docSnap.Ref.ID, docSnap.Data()), nil
}

// List returns services, optionally filtered by category, sorted by name.
// Falls back to a client-side sort when the composite index is missing.
func (r *firestoreServiceRepository) List(ctx context.Context, category string, limit int) ([]*models.Service, error) {
	base := r.client.Collection(servicesCollection).Query
	if category != "" {
		base = base.Where("category", "==", category)
	}

	ordered := base.OrderBy("name", firestore.Asc)
	if limit > 0 {
		ordered = ordered.Limit(limit)
	}
	services, err := r.collect(ctx, ordered)
	if err != nil && status.Code(err) == codes.FailedPrecondition {
		log.Printf("Warning: ordered service query failed (likely missing index), falling back to client-side sort: %v", err)
		unordered := base
		if limit > 0 {
			unordered = unordered.Limit(limit)
		}
		services, err = r.collect(ctx, unordered)
		if err == nil {
			sort.Slice(services, func(i, j int) bool {
				return services[i].Name < services[j].Name
			})
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list services (category '%s'): %w", category, err)
	}
	return services, nil
}

// Related returns up to limit services sharing category, excluding excludeID.
func (r *firestoreServiceRepository) Related(ctx context.Context, category, excludeID string, limit int) ([]*models.Service, error) {
	if category == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 8
	}
	candidates, err := r.List(ctx, category, limit+1)
	if err != nil {
		return nil, err
	}
	related := make([]*models.Service, 0, limit)
	for _, s := range candidates {
		if s.ID == excludeID {
			continue
		}
		related = append(related, s)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (r *firestoreServiceRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Service, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var services []*models.Service
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		services = append(services, models.ServiceFromDoc(doc.Ref.ID, doc.Data()))
	}
	return services, nil
}
