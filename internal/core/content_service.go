package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront-backend-go/internal/cache"
	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// contentService implements the ContentService interface.
type contentService struct {
	contentRepo db.ContentRepository
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewContentService creates a new ContentService instance.
func NewContentService(cr db.ContentRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) ContentService {
	return &contentService{contentRepo: cr, cache: c, cacheTTL: cacheTTL, logger: logger}
}

func (s *contentService) Categories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if cacheGetJSON(s.cache, s.logger, "content:categories", &categories) {
		return categories, nil
	}
	categories, err := s.contentRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	cacheSetJSON(s.cache, s.logger, "content:categories", categories, s.cacheTTL)
	return categories, nil
}

func (s *contentService) Banners(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	if cacheGetJSON(s.cache, s.logger, "content:banners", &banners) {
		return banners, nil
	}
	banners, err := s.contentRepo.Banners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	cacheSetJSON(s.cache, s.logger, "content:banners", banners, s.cacheTTL)
	return banners, nil
}

func (s *contentService) Blogs(ctx context.Context, limit int) ([]*models.Blog, error) {
	key := fmt.Sprintf("content:blogs:%d", limit)
	var blogs []*models.Blog
	if cacheGetJSON(s.cache, s.logger, key, &blogs) {
		return blogs, nil
	}
	blogs, err := s.contentRepo.Blogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	cacheSetJSON(s.cache, s.logger, key, blogs, s.cacheTTL)
	return blogs, nil
}
