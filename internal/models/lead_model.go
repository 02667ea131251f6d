package models

import "time"

// Lead is a captured product enquiry with a human-readable sequential
// identifier scoped to the Indian financial year.
type Lead struct {
	ID          string    `json:"id" firestore:"-"`
	LeadID      string    `json:"leadId" firestore:"leadId"`
	Name        string    `json:"name" firestore:"name"`
	Phone       string    `json:"phone" firestore:"phone"`
	Email       string    `json:"email,omitempty" firestore:"email,omitempty"`
	ProductID   string    `json:"productId,omitempty" firestore:"productId,omitempty"`
	ProductName string    `json:"productName,omitempty" firestore:"productName,omitempty"`
	Message     string    `json:"message,omitempty" firestore:"message,omitempty"`
	Source      string    `json:"source,omitempty" firestore:"source,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// LeadCounter is the per-financial-year sequence document under
// leadCounters/{fy}.
type LeadCounter struct {
	FY  string `firestore:"fy"`
	Seq int64  `firestore:"seq"`
}
