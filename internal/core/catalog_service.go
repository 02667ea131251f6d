package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront-backend-go/internal/cache"
	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// Custom errors for the CatalogService.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrUnknownTier     = errors.New("unknown package tier")
)

// ProductDetail is a product plus its derived display pricing.
type ProductDetail struct {
	*models.Product
	DiscountPercent int  `json:"discountPercent"`
	PriceOnEnquiry  bool `json:"priceOnEnquiry,omitempty"`
}

// RelatedItems carries the related products and services of a product
// detail page. The two lists are fetched concurrently into disjoint slots.
type RelatedItems struct {
	Products []*models.Product `json:"products"`
	Services []*models.Service `json:"services"`
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	productRepo db.ProductRepository
	serviceRepo db.ServiceRepository
	cache       cache.Cache // may be nil, which disables caching
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(pr db.ProductRepository, sr db.ServiceRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: pr,
		serviceRepo: sr,
		cache:       c,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// ListProducts returns products for a category, cache-aside.
func (s *catalogService) ListProducts(ctx context.Context, category string, limit int) ([]*models.Product, error) {
	key := fmt.Sprintf("products:%s:%d", category, limit)
	var products []*models.Product
	if s.cacheGet(key, &products) {
		return products, nil
	}

	products, err := s.productRepo.List(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	s.cacheSet(key, products)
	return products, nil
}

// GetProduct returns a product with derived display pricing.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product '%s': %w", productID, err)
	}
	return &ProductDetail{
		Product:         product,
		DiscountPercent: DiscountPercent(product.Price, product.OriginalPrice),
		PriceOnEnquiry:  !product.HasPrice(),
	}, nil
}

// Related fetches a product's related products and services concurrently.
// The two loads write to disjoint slots, so no coordination beyond the
// errgroup wait is needed.
func (s *catalogService) Related(ctx context.Context, productID string) (*RelatedItems, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product '%s': %w", productID, err)
	}

	related := &RelatedItems{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.productRepo.Related(gctx, product.Category, product.ID, 8)
		if err != nil {
			return fmt.Errorf("related products: %w", err)
		}
		related.Products = products
		return nil
	})
	g.Go(func() error {
		services, err := s.serviceRepo.Related(gctx, product.Category, "", 4)
		if err != nil {
			return fmt.Errorf("related services: %w", err)
		}
		related.Services = services
		return nil
	})
	if err := g.Wait(); err != nil {
		// Related content is decorative; degrade to whatever loaded.
		s.logger.Warn("partial related fetch", zap.String("productId", productID), zap.Error(err))
	}
	return related, nil
}

// ListServices returns services for a category, cache-aside.
func (s *catalogService) ListServices(ctx context.Context, category string, limit int) ([]*models.Service, error) {
	key := fmt.Sprintf("services:%s:%d", category, limit)
	var services []*models.Service
	if s.cacheGet(key, &services) {
		return services, nil
	}

	services, err := s.serviceRepo.List(ctx, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	s.cacheSet(key, services)
	return services, nil
}

// GetService returns one service with its package map.
func (s *catalogService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to get service '%s': %w", serviceID, err)
	}
	return service, nil
}

// QuoteService prices a tier and area selection for a service.
func (s *catalogService) QuoteService(ctx context.Context, req models.QuoteRequest) (*Quote, error) {
	service, err := s.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	pkg, ok := service.PackageForTier(req.PackageTier)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' on service '%s'", ErrUnknownTier, req.PackageTier, req.ServiceID)
	}
	quote := ServiceQuote(pkg.Price, req.AreaSqFt)
	return &quote, nil
}

func (s *catalogService) cacheGet(key string, out interface{}) bool {
	return cacheGetJSON(s.cache, s.logger, key, out)
}

func (s *catalogService) cacheSet(key string, value interface{}) {
	cacheSetJSON(s.cache, s.logger, key, value, s.cacheTTL)
}
