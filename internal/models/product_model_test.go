package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFromDocModernFields(t *testing.T) {
	p := ProductFromDoc("p1", map[string]interface{}{
		"name":          "Modular Wardrobe",
		"currentPrice":  45000.0,
		"originalPrice": 60000.0,
		"imageUrl":      "https://cdn.example.com/w.jpg",
		"category":      "wardrobes",
		"inStock":       true,
	})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Modular Wardrobe", p.Name)
	assert.Equal(t, 45000.0, p.Price)
	assert.Equal(t, 60000.0, p.OriginalPrice)
	assert.Equal(t, "https://cdn.example.com/w.jpg", p.ImageURL)
	assert.True(t, p.InStock)
}

func TestProductFromDocLegacyFieldNames(t *testing.T) {
	p := ProductFromDoc("p2", map[string]interface{}{
		"title": "Kitchen Chimney",
		"price": 12000.0,
		"mrp":   15000.0,
		"img":   "chimney.jpg",
	})

	assert.Equal(t, "Kitchen Chimney", p.Name)
	assert.Equal(t, 12000.0, p.Price)
	assert.Equal(t, 15000.0, p.OriginalPrice)
	assert.Equal(t, "chimney.jpg", p.ImageURL)
}

func TestProductFromDocImageFallsBackToGallery(t *testing.T) {
	p := ProductFromDoc("p3", map[string]interface{}{
		"name":   "Sofa",
		"images": []interface{}{"a.jpg", "b.jpg"},
	})
	assert.Equal(t, "a.jpg", p.ImageURL)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
}

func TestProductFromDocOriginalPriceClamped(t *testing.T) {
	p := ProductFromDoc("p4", map[string]interface{}{
		"name":          "Table",
		"currentPrice":  9000.0,
		"originalPrice": 5000.0,
	})
	assert.Equal(t, 9000.0, p.OriginalPrice, "original price never drops below the selling price")
}

func TestProductFromDocInStockDefaultsTrue(t *testing.T) {
	p := ProductFromDoc("p5", map[string]interface{}{"name": "Chair"})
	assert.True(t, p.InStock)

	q := ProductFromDoc("p6", map[string]interface{}{"name": "Bench", "available": false})
	assert.False(t, q.InStock)
}

func TestProductFromDocWithoutPrice(t *testing.T) {
	p := ProductFromDoc("p7", map[string]interface{}{"name": "Custom Unit"})
	assert.False(t, p.HasPrice())
}

func TestModulesFromDocStringAndMapEntries(t *testing.T) {
	p := ProductFromDoc("p8", map[string]interface{}{
		"name": "Wardrobe",
		"modules": []interface{}{
			"2-door",
			map[string]interface{}{"name": "3-door", "price": 8000.0},
		},
	})

	assert.Len(t, p.Modules, 2)
	assert.Equal(t, "2-door", p.Modules[0].Name)
	assert.Equal(t, 0.0, p.Modules[0].Price)
	assert.Equal(t, "3-door", p.Modules[1].Name)
	assert.Equal(t, 8000.0, p.Modules[1].Price)
}
