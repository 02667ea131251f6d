package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/events"
	"storefront-backend-go/internal/models"
)

// Custom errors for the CartService.
var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// cartService implements the CartService interface.
type cartService struct {
	cartRepo  db.CartRepository
	publisher events.Publisher // may be nil, which disables events
	logger    *zap.Logger
}

// NewCartService creates a new CartService instance.
func NewCartService(cr db.CartRepository, pub events.Publisher, logger *zap.Logger) CartService {
	return &cartService{cartRepo: cr, publisher: pub, logger: logger}
}

// ComputeCartTotals sums a cart's lines. Savings only counts lines whose
// original price is above the selling price.
func ComputeCartTotals(items []models.CartItem) models.CartTotals {
	var totals models.CartTotals
	for _, item := range items {
		qty := float64(item.Quantity)
		totals.Subtotal += item.Price * qty
		if item.OriginalPrice > item.Price {
			totals.Savings += (item.OriginalPrice - item.Price) * qty
		}
		totals.Count += item.Quantity
	}
	return totals
}

// GetCart returns the stored cart for a phone number. A customer with no
// stored cart gets an empty one, never an error.
func (s *cartService) GetCart(ctx context.Context, phone string) (*models.Cart, models.CartTotals, error) {
	cart, err := s.cartRepo.Get(ctx, phone)
	if err != nil {
		return nil, models.CartTotals{}, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, ComputeCartTotals(cart.Items), nil
}

// AddItem adds a line to the cart, merging into an existing line with the
// same product, colour and module selection.
func (s *cartService) AddItem(ctx context.Context, phone string, req models.AddToCartRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	cart, err := s.cartRepo.Get(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	line := models.CartItem{
		ProductID:      req.ProductID,
		Name:           req.Name,
		ImageURL:       req.ImageURL,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Quantity:       req.Quantity,
		SelectedColor:  req.SelectedColor,
		SelectedModule: req.SelectedModule,
		ServiceID:      req.ServiceID,
		PackageTier:    req.PackageTier,
		AreaSqFt:       req.AreaSqFt,
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(line) {
			cart.Items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, line)
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.publishCartUpdated(phone, cart)
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line.
func (s *cartService) UpdateQuantity(ctx context.Context, phone string, req models.UpdateCartItemRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.cartRepo.Get(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	target := models.CartItem{
		ProductID:      req.ProductID,
		SelectedColor:  req.SelectedColor,
		SelectedModule: req.SelectedModule,
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].SameLine(target) {
			cart.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: '%s'", ErrCartItemNotFound, req.ProductID)
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.publishCartUpdated(phone, cart)
	return cart, nil
}

// RemoveItem deletes a line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, phone string, req models.RemoveCartItemRequest) (*models.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	target := models.CartItem{
		ProductID:      req.ProductID,
		SelectedColor:  req.SelectedColor,
		SelectedModule: req.SelectedModule,
	}
	kept := cart.Items[:0]
	found := false
	for _, item := range cart.Items {
		if item.SameLine(target) {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, fmt.Errorf("%w: '%s'", ErrCartItemNotFound, req.ProductID)
	}
	cart.Items = kept

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.publishCartUpdated(phone, cart)
	return cart, nil
}

// Clear deletes the stored cart entirely.
func (s *cartService) Clear(ctx context.Context, phone string) error {
	if err := s.cartRepo.Delete(ctx, phone); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.publishCartUpdated(phone, &models.Cart{Phone: phone, Items: []models.CartItem{}})
	return nil
}

func (s *cartService) publishCartUpdated(phone string, cart *models.Cart) {
	if s.publisher == nil {
		return
	}
	totals := ComputeCartTotals(cart.Items)
	body, err := json.Marshal(map[string]interface{}{
		"phone":    phone,
		"count":    totals.Count,
		"subtotal": totals.Subtotal,
	})
	if err != nil {
		return
	}
	if err := s.publisher.Publish(events.TopicCartUpdated, body); err != nil {
		s.logger.Warn("failed to publish cart event", zap.String("phone", phone), zap.Error(err))
	}
}
