package models

// Package tier keys. Every service document carries up to three pricing
// brackets under these keys.
const (
	TierBasic   = "basic"
	TierPremium = "premium"
	TierElite   = "elite"
)

// Service is a home-services offering (painting, interiors, deep clean)
// priced per square foot through tiered packages.
type Service struct {
	ID       string                    `json:"id"`
	Name     string                    `json:"name"`
	Category string                    `json:"category,omitempty"`
	ImageURL string                    `json:"imageUrl,omitempty"`
	Packages map[string]ServicePackage `json:"packages,omitempty"`
}

// ServicePackage is one pricing bracket of a service. Price is the
// per-square-foot rate.
type ServicePackage struct {
	Name          string   `json:"name,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Features      []string `json:"features,omitempty"`
}

// PackageForTier returns the package for tier, or false when the service
// does not offer that bracket.
func (s *Service) PackageForTier(tier string) (ServicePackage, bool) {
	pkg, ok := s.Packages[tier]
	return pkg, ok
}

// ServiceFromDoc normalizes a raw Firestore document into a Service.
func ServiceFromDoc(id string, data map[string]interface{}) *Service {
	s := &Service{
		ID:       id,
		Name:     docString(data, "name", "title", "serviceName"),
		Category: docString(data, "category", "categoryName"),
		ImageURL: docString(data, "imageUrl", "imageURL", "image", "img", "thumbnail"),
	}
	raw, ok := data["packages"].(map[string]interface{})
	if !ok {
		return s
	}
	s.Packages = make(map[string]ServicePackage, len(raw))
	for tier, v := range raw {
		m, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		pkg := ServicePackage{
			Name:          docString(m, "name", "label"),
			Price:         docFloat(m, "price", "currentPrice"),
			OriginalPrice: docFloat(m, "originalPrice", "mrp"),
			Features:      docStrings(m, "features", "inclusions"),
		}
		if pkg.OriginalPrice < pkg.Price {
			pkg.OriginalPrice = pkg.Price
		}
		s.Packages[tier] = pkg
	}
	return s
}
