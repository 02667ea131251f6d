package models

import "time"

// Category is a catalog category node. Parent is empty for top-level
// categories.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Parent   string `json:"parent,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Order    int    `json:"order,omitempty"`
}

// CategoryFromDoc normalizes a raw Firestore document into a Category.
func CategoryFromDoc(id string, data map[string]interface{}) *Category {
	return &Category{
		ID:       id,
		Name:     docString(data, "name", "title"),
		Parent:   docString(data, "parent", "parentCategory"),
		ImageURL: docString(data, "imageUrl", "imageURL", "image", "img", "thumbnail"),
		Order:    int(docFloat(data, "order", "position")),
	}
}

// Banner is a homepage banner slot.
type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl"`
	LinkURL  string `json:"linkUrl,omitempty"`
	Active   bool   `json:"active"`
	Order    int    `json:"order,omitempty"`
}

// BannerFromDoc normalizes a raw Firestore document into a Banner.
func BannerFromDoc(id string, data map[string]interface{}) *Banner {
	return &Banner{
		ID:       id,
		Title:    docString(data, "title", "name"),
		ImageURL: docString(data, "imageUrl", "imageURL", "image", "img", "thumbnail"),
		LinkURL:  docString(data, "linkUrl", "link", "href"),
		Active:   docBool(data, true, "active", "enabled"),
		Order:    int(docFloat(data, "order", "position")),
	}
}

// Blog is a published article teaser.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}

// BlogFromDoc normalizes a raw Firestore document into a Blog.
func BlogFromDoc(id string, data map[string]interface{}) *Blog {
	return &Blog{
		ID:          id,
		Title:       docString(data, "title", "name"),
		Slug:        docString(data, "slug"),
		Excerpt:     docString(data, "excerpt", "summary", "description"),
		ImageURL:    docString(data, "imageUrl", "imageURL", "image", "img", "thumbnail"),
		PublishedAt: docTime(data, "publishedAt", "createdAt"),
	}
}
