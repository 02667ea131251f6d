package core

import "math"

// MinServiceArea is the smallest square footage a service quote accepts.
// Anything below it is treated as "not yet entered" and prices to zero.
const MinServiceArea = 100.0

// advanceRate is the booking deposit collected on service orders.
const advanceRate = 0.10

// Quote is the priced outcome of a service selection.
type Quote struct {
	Total          float64 `json:"total"`
	Advance        float64 `json:"advance"`
	PriceOnEnquiry bool    `json:"priceOnEnquiry,omitempty"`
}

// DiscountPercent returns the rounded percentage saved when current is
// below original, and 0 otherwise.
func DiscountPercent(current, original float64) int {
	if original <= 0 || original <= current {
		return 0
	}
	return int(math.Round((1 - current/original) * 100))
}

// ServiceQuote prices a service selection. ratePerSqFt is the package
// price, which is already the per-square-foot rate. A missing rate means
// the service is priced on enquiry; an area below MinServiceArea prices
// to zero so the UI keeps the submit disabled.
func ServiceQuote(ratePerSqFt, areaSqFt float64) Quote {
	if ratePerSqFt <= 0 {
		return Quote{PriceOnEnquiry: true}
	}
	if areaSqFt < MinServiceArea {
		return Quote{}
	}
	total := ratePerSqFt * areaSqFt
	return Quote{
		Total:   total,
		Advance: math.Round(total * advanceRate),
	}
}

// AdvanceAmount returns the booking deposit for a computed total.
func AdvanceAmount(total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(total * advanceRate)
}
