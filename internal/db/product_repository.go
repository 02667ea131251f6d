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

const productsCollection = "products"

// firestoreProductRepository implements ProductRepository using Firestore.
type firestoreProductRepository struct {
	client *firestore.Client
}

// NewFirestoreProductRepository creates a new instance of firestoreProductRepository.
func NewFirestoreProductRepository(client *firestore.Client) ProductRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProductRepository.")
	}
	return &firestoreProductRepository{client: client}
}

// GetByID retrieves a product document from Firestore by its ID.
func (r *firestoreProductRepository) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	if productID == "" {
		return nil, errors.New("productID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(productsCollection).Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("product with ID '%s' not found: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product with ID '%s': %w", productID, err)
	}
	return models.ProductFromDoc(docSnap.Ref.ID, docSnap.Data()), nil
}

// List returns products, optionally filtered by category, newest first.
// When the composite category+createdAt index is absent the ordered query
// fails with FailedPrecondition; the query is rerun unordered and sorted
// here instead.
func (r *firestoreProductRepository) List(ctx context.Context, category string, limit int) ([]*models.Product, error) {
	base := r.client.Collection(productsCollection).Query
	if category != "" {
		base = base.Where("category", "==", category)
	}

	ordered := base.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		ordered = ordered.Limit(limit)
	}
	products, err := r.collect(ctx, ordered)
	if err != nil && status.Code(err) == codes.FailedPrecondition {
		log.Printf("Warning: ordered product query failed (likely missing index), falling back to client-side sort: %v", err)
		unordered := base
		if limit > 0 {
			unordered = unordered.Limit(limit)
		}
		products, err = r.collect(ctx, unordered)
		if err == nil {
			sort.Slice(products, func(i, j int) bool {
				return products[i].CreatedAt.After(products[j].CreatedAt)
			})
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products (category '%s'): %w", category, err)
	}
	return products, nil
}

// Related returns up to limit products sharing category, excluding excludeID.
func (r *firestoreProductRepository) Related(ctx context.Context, category, excludeID string, limit int) ([]*models.Product, error) {
	if category == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 8
	}
	// Fetch one extra so the excluded product does not shrink the page.
	candidates, err := r.List(ctx, category, limit+1)
	if err != nil {
		return nil, err
	}
	related := make([]*models.Product, 0, limit)
	for _, p := range candidates {
		if p.ID == excludeID {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (r *firestoreProductRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Product, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []*models.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		products = append(products, models.ProductFromDoc(doc.Ref.ID, doc.Data()))
	}
	return products, nil
}
