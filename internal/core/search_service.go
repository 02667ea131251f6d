package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-backend-go/internal/cache"
	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/models"
)

// Relevance weights, strongest match first. A product scores once per
// field on its best match for that field.
const (
	scoreExactName   = 100
	scorePrefixName  = 80
	scoreSubstring   = 60
	scoreWordOverlap = 40
	scoreSpec        = 30
	scoreDescription = 20
	scoreMetadata    = 10

	maxSearchResults = 10
)

// searchService implements the SearchService interface. It ranks the full
// product list in memory; the catalog is small enough that a dedicated
// search index is not worth running.
type searchService struct {
	productRepo db.ProductRepository
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewSearchService creates a new SearchService instance.
func NewSearchService(pr db.ProductRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) SearchService {
	return &searchService{productRepo: pr, cache: c, cacheTTL: cacheTTL, logger: logger}
}

// Search ranks the catalog against query and returns the top matches.
// An empty or whitespace query returns no results.
func (s *searchService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return []*models.Product{}, nil
	}

	products, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		product *models.Product
		score   int
	}
	var matches []scored
	for _, p := range products {
		if score := scoreProduct(p, query); score > 0 {
			matches = append(matches, scored{product: p, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].product.Name < matches[j].product.Name
	})
	if len(matches) > maxSearchResults {
		matches = matches[:maxSearchResults]
	}

	results := make([]*models.Product, len(matches))
	for i, m := range matches {
		results[i] = m.product
	}
	return results, nil
}

// scoreProduct returns the relevance of p for an already-lowercased query.
func scoreProduct(p *models.Product, query string) int {
	name := strings.ToLower(p.Name)
	score := 0

	switch {
	case name == query:
		score += scoreExactName
	case strings.HasPrefix(name, query):
		score += scorePrefixName
	case strings.Contains(name, query):
		score += scoreSubstring
	case wordsOverlap(name, query):
		score += scoreWordOverlap
	}

	for k, v := range p.Specifications {
		if strings.Contains(strings.ToLower(k), query) || strings.Contains(strings.ToLower(v), query) {
			score += scoreSpec
			break
		}
	}

	if strings.Contains(strings.ToLower(p.Description), query) {
		score += scoreDescription
	}

	if strings.Contains(strings.ToLower(p.Category), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		anyTagContains(p.Tags, query) {
		score += scoreMetadata
	}
	return score
}

// wordsOverlap reports whether any whole word of the query appears as a
// whole word of the name.
func wordsOverlap(name, query string) bool {
	nameWords := strings.Fields(name)
	for _, qw := range strings.Fields(query) {
		for _, nw := range nameWords {
			if qw == nw {
				return true
			}
		}
	}
	return false
}

func anyTagContains(tags []string, query string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), query) {
			return true
		}
	}
	return false
}

// allProducts loads the whole catalog, cache-aside.
func (s *searchService) allProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if cacheGetJSON(s.cache, s.logger, "search:catalog", &products) {
		return products, nil
	}
	products, err := s.productRepo.List(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for search: %w", err)
	}
	cacheSetJSON(s.cache, s.logger, "search:catalog", products, s.cacheTTL)
	return products, nil
}
