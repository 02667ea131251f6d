package db

import (
	"context"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront-backend-go/internal/models"
)

const (
	categoriesCollection = "categories"
	bannersCollection    = "banners"
	blogsCollection      = "blogs"
)

// firestoreContentRepository implements ContentRepository using Firestore.
type firestoreContentRepository struct {
	client *firestore.Client
}

// NewFirestoreContentRepository creates a new instance of firestoreContentRepository.
func NewFirestoreContentRepository(client *firestore.Client) ContentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ContentRepository.")
	}
	return &firestoreContentRepository{client: client}
}

// Categories returns all categories in display order.
func (r *firestoreContentRepository) Categories(ctx context.Context) ([]*models.Category, error) {
	docs, err := r.collect(ctx, r.client.Collection(categoriesCollection).OrderBy("order", firestore.Asc))
	if err != nil && status.Code(err) == codes.FailedPrecondition {
		docs, err = r.collect(ctx, r.client.Collection(categoriesCollection).Query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]*models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, models.CategoryFromDoc(doc.Ref.ID, doc.Data()))
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Order < categories[j].Order })
	return categories, nil
}

// Banners returns active banners in display order. The active+order query
// needs a composite index; when it is missing, the filter and sort run here.
func (r *firestoreContentRepository) Banners(ctx context.Context) ([]*models.Banner, error) {
	ordered := r.client.Collection(bannersCollection).Where("active", "==", true).OrderBy("order", firestore.Asc)
	docs, err := r.collect(ctx, ordered)
	if err != nil && status.Code(err) == codes.FailedPrecondition {
		log.Printf("Warning: ordered banner query failed (likely missing index), filtering client-side: %v", err)
		docs, err = r.collect(ctx, r.client.Collection(bannersCollection).Query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	banners := make([]*models.Banner, 0, len(docs))
	for _, doc := range docs {
		b := models.BannerFromDoc(doc.Ref.ID, doc.Data())
		if !b.Active {
			continue
		}
		banners = append(banners, b)
	}
	sort.SliceStable(banners, func(i, j int) bool { return banners[i].Order < banners[j].Order })
	return banners, nil
}

// Blogs returns published articles, newest first.
func (r *firestoreContentRepository) Blogs(ctx context.Context, limit int) ([]*models.Blog, error) {
	query := r.client.Collection(blogsCollection).OrderBy("publishedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	docs, err := r.collect(ctx, query)
	if err != nil && status.Code(err) == codes.FailedPrecondition {
		unordered := r.client.Collection(blogsCollection).Query
		if limit > 0 {
			unordered = unordered.Limit(limit)
		}
		docs, err = r.collect(ctx, unordered)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	blogs := make([]*models.Blog, 0, len(docs))
	for _, doc := range docs {
		blogs = append(blogs, models.BlogFromDoc(doc.Ref.ID, doc.Data()))
	}
	sort.SliceStable(blogs, func(i, j int) bool { return blogs[i].PublishedAt.After(blogs[j].PublishedAt) })
	return blogs, nil
}

func (r *firestoreContentRepository) collect(ctx context.Context, query firestore.Query) ([]*firestore.DocumentSnapshot, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []*firestore.DocumentSnapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
