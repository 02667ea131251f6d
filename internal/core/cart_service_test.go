package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend-go/internal/models"
)

// fakeCartRepo keeps carts in memory, keyed by phone.
type fakeCartRepo struct {
	carts map[string]*models.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartRepo) Get(_ context.Context, phone string) (*models.Cart, error) {
	if cart, ok := f.carts[phone]; ok {
		return cart, nil
	}
	return &models.Cart{Phone: phone, Items: []models.CartItem{}}, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *models.Cart) error {
	f.carts[cart.Phone] = cart
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, phone string) error {
	delete(f.carts, phone)
	return nil
}

// fakePublisher records published topics.
type fakePublisher struct {
	topics []string
}

func (f *fakePublisher) Publish(topic string, _ []byte) error {
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func newTestCartService() (CartService, *fakeCartRepo, *fakePublisher) {
	repo := newFakeCartRepo()
	pub := &fakePublisher{}
	return NewCartService(repo, pub, zap.NewNop()), repo, pub
}

func TestAddItemNewLine(t *testing.T) {
	svc, _, pub := newTestCartService()

	cart, err := svc.AddItem(context.Background(), "+911234567890", models.AddToCartRequest{
		ProductID: "p1",
		Name:      "Wardrobe",
		Price:     45000,
		Quantity:  1,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Contains(t, pub.topics, "cart.updated")
}

func TestAddItemMergesSameLine(t *testing.T) {
	svc, _, _ := newTestCartService()
	ctx := context.Background()
	phone := "+911234567890"

	_, err := svc.AddItem(ctx, phone, models.AddToCartRequest{
		ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1, SelectedColor: "walnut",
	})
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, phone, models.AddToCartRequest{
		ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 2, SelectedColor: "walnut",
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same product and colour merge into one line")
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemDifferentColorIsNewLine(t *testing.T) {
	svc, _, _ := newTestCartService()
	ctx := context.Background()
	phone := "+911234567890"

	_, err := svc.AddItem(ctx, phone, models.AddToCartRequest{
		ProductID: "p1", Name: "Wardrobe", Price: 45000, SelectedColor: "walnut",
	})
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, phone, models.AddToCartRequest{
		ProductID: "p1", Name: "Wardrobe", Price: 45000, SelectedColor: "oak",
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc, _, _ := newTestCartService()

	cart, err := svc.AddItem(context.Background(), "+911234567890", models.AddToCartRequest{
		ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	svc, _, _ := newTestCartService()
	ctx := context.Background()
	phone := "+911234567890"

	_, err := svc.AddItem(ctx, phone, models.AddToCartRequest{
		ProductID: "p1", Name: "Wardrobe", Price: 45000, Quantity: 1,
	})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, phone, models.UpdateCartItemRequest{
		ProductID: "p1", Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.UpdateQuantity(context.Background(), "+911234567890", models.UpdateCartItemRequest{
		ProductID: "p1", Quantity: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.UpdateQuantity(context.Background(), "+911234567890", models.UpdateCartItemRequest{
		ProductID: "missing", Quantity: 2,
	})
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc, _, _ := newTestCartService()
	ctx := context.Background()
	phone := "+911234567890"

	_, err := svc.AddItem(ctx, phone, models.AddToCartRequest{ProductID: "p1", Name: "Wardrobe", Price: 45000})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, phone, models.AddToCartRequest{ProductID: "p2", Name: "Sofa", Price: 30000})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, phone, models.RemoveCartItemRequest{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestRemoveItemMissingLine(t *testing.T) {
	svc, _, _ := newTestCartService()

	_, err := svc.RemoveItem(context.Background(), "+911234567890", models.RemoveCartItemRequest{ProductID: "missing"})
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestClearCart(t *testing.T) {
	svc, repo, _ := newTestCartService()
	ctx := context.Background()
	phone := "+911234567890"

	_, err := svc.AddItem(ctx, phone, models.AddToCartRequest{ProductID: "p1", Name: "Wardrobe", Price: 45000})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, phone))
	_, ok := repo.carts[phone]
	assert.False(t, ok)
}

func TestComputeCartTotals(t *testing.T) {
	totals := ComputeCartTotals([]models.CartItem{
		{Price: 800, OriginalPrice: 1000, Quantity: 2},
		{Price: 500, Quantity: 1},
	})

	assert.Equal(t, 2100.0, totals.Subtotal)
	assert.Equal(t, 400.0, totals.Savings)
	assert.Equal(t, 3, totals.Count)
}
