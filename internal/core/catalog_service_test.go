package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// fakeServiceRepo serves a fixed set of services.
type fakeServiceRepo struct {
	services []*models.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, serviceID string) (*models.Service, error) {
	for _, s := range f.services {
		if s.ID == serviceID {
			return s, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeServiceRepo) List(_ context.Context, category string, limit int) ([]*models.Service, error) {
	var out []*models.Service
	for _, s := range f.services {
		if category != "" && s.Category != category {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Related(_ context.Context, category, excludeID string, limit int) ([]*models.Service, error) {
	var out []*models.Service
	for _, s := range f.services {
		if s.Category != category || s.ID == excludeID {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestCatalogService() CatalogService {
	products := []*models.Product{
		{ID: "p1", Name: "Wardrobe", Category: "storage", Price: 800, OriginalPrice: 1000},
		{ID: "p2", Name: "Bookshelf", Category: "storage", Price: 500, OriginalPrice: 500},
		{ID: "p3", Name: "Custom Unit", Category: "storage"},
	}
	services := []*models.Service{
		{ID: "s1", Name: "Interior Painting", Category: "storage", Packages: map[string]models.ServicePackage{
			models.TierBasic:   {Price: 12},
			models.TierPremium: {Price: 18},
		}},
	}
	return NewCatalogService(&fakeProductRepo{products: products}, &fakeServiceRepo{services: services}, nil, 0, zap.NewNop())
}

func TestGetProductComputesDiscount(t *testing.T) {
	svc := newTestCatalogService()

	detail, err := svc.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 20, detail.DiscountPercent)
	assert.False(t, detail.PriceOnEnquiry)
}

func TestGetProductNoDiscountAtFullPrice(t *testing.T) {
	svc := newTestCatalogService()

	detail, err := svc.GetProduct(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, 0, detail.DiscountPercent)
}

func TestGetProductPriceOnEnquiry(t *testing.T) {
	svc := newTestCatalogService()

	detail, err := svc.GetProduct(context.Background(), "p3")
	require.NoError(t, err)
	assert.True(t, detail.PriceOnEnquiry)
}

func TestGetProductNotFound(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRelatedExcludesSelf(t *testing.T) {
	svc := newTestCatalogService()

	related, err := svc.Related(context.Background(), "p1")
	require.NoError(t, err)
	for _, p := range related.Products {
		assert.NotEqual(t, "p1", p.ID)
	}
	assert.Len(t, related.Services, 1, "services sharing the category come along")
}

func TestQuoteService(t *testing.T) {
	svc := newTestCatalogService()

	quote, err := svc.QuoteService(context.Background(), models.QuoteRequest{
		ServiceID: "s1", PackageTier: models.TierPremium, AreaSqFt: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 9000.0, quote.Total)
	assert.Equal(t, 900.0, quote.Advance)
}

func TestQuoteServiceUnknownTier(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.QuoteService(context.Background(), models.QuoteRequest{
		ServiceID: "s1", PackageTier: "platinum", AreaSqFt: 500,
	})
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestQuoteServiceUnknownService(t *testing.T) {
	svc := newTestCatalogService()

	_, err := svc.QuoteService(context.Background(), models.QuoteRequest{
		ServiceID: "missing", PackageTier: models.TierBasic, AreaSqFt: 500,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
