package models

import "time"

// Product is a catalog item. Instances are always built through
// ProductFromDoc so the alternate field names used by older documents
// (five different image keys, two price keys) are resolved exactly once.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Category       string            `json:"category,omitempty"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Price          float64           `json:"price"`                   // current selling price
	OriginalPrice  float64           `json:"originalPrice,omitempty"` // MRP / strike-through price
	ImageURL       string            `json:"imageUrl,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Colors         []string          `json:"colors,omitempty"`
	Materials      []string          `json:"materials,omitempty"`
	Modules        []ModuleOption    `json:"modules,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	InStock        bool              `json:"inStock"`
	CreatedAt      time.Time         `json:"createdAt,omitempty"`
}

// ModuleOption is a configurable add-on of a product (e.g. a wardrobe
// module) with its own price delta.
type ModuleOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// HasPrice reports whether the product carries a usable selling price.
// Products without one are shown as "Price on Enquiry".
func (p *Product) HasPrice() bool {
	return p.Price > 0
}

// ProductFromDoc normalizes a raw Firestore document into a Product.
func ProductFromDoc(id string, data map[string]interface{}) *Product {
	p := &Product{
		ID:          id,
		Name:        docString(data, "name", "title", "productName"),
		Description: docString(data, "description", "desc"),
		Brand:       docString(data, "brand"),
		Category:    docString(data, "category", "categoryName"),
		Subcategory: docString(data, "subcategory", "subCategory"),
		// Historical documents store the current price under either key.
		Price:          docFloat(data, "currentPrice", "price"),
		OriginalPrice:  docFloat(data, "originalPrice", "mrp"),
		ImageURL:       docString(data, "imageUrl", "imageURL", "image", "img", "thumbnail"),
		Images:         docStrings(data, "images", "gallery"),
		Colors:         docStrings(data, "colors", "colorOptions"),
		Materials:      docStrings(data, "materials", "materialOptions"),
		Specifications: docStringMap(data, "specifications", "specs"),
		Tags:           docStrings(data, "tags"),
		InStock:        docBool(data, true, "inStock", "available"),
		CreatedAt:      docTime(data, "createdAt"),
	}
	if p.OriginalPrice < p.Price {
		p.OriginalPrice = p.Price
	}
	if p.ImageURL == "" && len(p.Images) > 0 {
		p.ImageURL = p.Images[0]
	}
	p.Modules = modulesFromDoc(data)
	return p
}

func modulesFromDoc(data map[string]interface{}) []ModuleOption {
	for _, key := range []string{"modules", "moduleOptions"} {
		raw, ok := data[key].([]interface{})
		if !ok {
			continue
		}
		var out []ModuleOption
		for _, e := range raw {
			switch m := e.(type) {
			case string:
				out = append(out, ModuleOption{Name: m})
			case map[string]interface{}:
				name := docString(m, "name", "label")
				if name == "" {
					continue
				}
				out = append(out, ModuleOption{Name: name, Price: docFloat(m, "price")})
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
