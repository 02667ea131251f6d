package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront-backend-go/internal/models"
)

const ordersCollection = "orders"

// firestoreOrderRepository implements OrderRepository using Firestore.
type firestoreOrderRepository struct {
	client *firestore.Client
}

// NewFirestoreOrderRepository creates a new instance of firestoreOrderRepository.
func NewFirestoreOrderRepository(client *firestore.Client) OrderRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OrderRepository.")
	}
	return &firestoreOrderRepository{client: client}
}

// Create adds a new order document with an auto-generated ID.
// CreatedAt and UpdatedAt are handled by serverTimestamp tags.
func (r *firestoreOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	docRef := r.client.Collection(ordersCollection).NewDoc()
	order.ID = docRef.ID

	_, err := docRef.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves an order document by its ID.
func (r *firestoreOrderRepository) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, errors.New("orderID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(ordersCollection).Doc(orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("order with ID '%s' not found: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order with ID '%s': %w", orderID, err)
	}

	var order models.Order
	if err := docSnap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order data for ID '%s': %w", orderID, err)
	}
	order.ID = docSnap.Ref.ID
	return &order, nil
}

// GetByRazorpayOrderID finds the order holding a gateway order ID. Used by
// payment verification, where the widget callback only knows gateway IDs.
func (r *firestoreOrderRepository) GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*models.Order, error) {
	if razorpayOrderID == "" {
		return nil, errors.New("razorpayOrderID cannot be empty")
	}
	iter := r.client.Collection(ordersCollection).
		Where("razorpayOrderId", "==", razorpayOrderID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("order for gateway order '%s' not found: %w", razorpayOrderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up order by gateway order '%s': %w", razorpayOrderID, err)
	}

	var order models.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order data for gateway order '%s': %w", razorpayOrderID, err)
	}
	order.ID = doc.Ref.ID
	return &order, nil
}

// ListByPhone returns a customer's orders, newest first, with a
// client-side sort fallback when the composite index is missing.
func (r *firestoreOrderRepository) ListByPhone(ctx context.Context, phone string, limit int) ([]*models.Order, error) {
	if phone == "" {
		return nil, errors.New("phone cannot be empty for ListByPhone operation")
	}
	base := r.client.Collection(ordersCollection).Where("phone", "==", phone)

	ordered := base.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		ordered = ordered.Limit(limit)
	}
	orders, err := r.collect(ctx, ordered)
	if err != nil && status.Code(err) == codes.FailedPrecondition {
		log.Printf("Warning: ordered order query failed (likely missing index), falling back to client-side sort: %v", err)
		unordered := base
		if limit > 0 {
			unordered = unordered.Limit(limit)
		}
		orders, err = r.collect(ctx, unordered)
		if err == nil {
			sort.Slice(orders, func(i, j int) bool {
				return orders[i].CreatedAt.After(orders[j].CreatedAt)
			})
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for '%s': %w", phone, err)
	}
	return orders, nil
}

// UpdatePayment persists the payment confirmation fields and status.
func (r *firestoreOrderRepository) UpdatePayment(ctx context.Context, orderID, paymentID, signature, orderStatus string) error {
	if orderID == "" {
		return errors.New("orderID cannot be empty for UpdatePayment operation")
	}
	_, err := r.client.Collection(ordersCollection).Doc(orderID).Update(ctx, []firestore.Update{
		{Path: "razorpayPaymentId", Value: paymentID},
		{Path: "razorpaySignature", Value: signature},
		{Path: "status", Value: orderStatus},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("order with ID '%s' not found for payment update: %w", orderID, ErrNotFound)
		}
		return fmt.Errorf("failed to update payment on order '%s': %w", orderID, err)
	}
	return nil
}

func (r *firestoreOrderRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Order, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var orders []*models.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var order models.Order
		if err := doc.DataTo(&order); err != nil {
			log.Printf("Error decoding order data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		order.ID = doc.Ref.ID
		orders = append(orders, &order)
	}
	return orders, nil
}
