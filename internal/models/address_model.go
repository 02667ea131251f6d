package models

import "time"

// Address is one entry of a customer's address book, stored under
// users/{phone}/addresses.
type Address struct {
	ID        string    `json:"id" firestore:"-"`
	Door      string    `json:"door,omitempty" firestore:"door,omitempty"`
	Street    string    `json:"street" firestore:"street"`
	Area      string    `json:"area,omitempty" firestore:"area,omitempty"`
	City      string    `json:"city" firestore:"city"`
	State     string    `json:"state" firestore:"state"`
	Pincode   string    `json:"pincode" firestore:"pincode"`
	Type      string    `json:"type,omitempty" firestore:"type,omitempty"` // home | work | other
	IsDefault bool      `json:"isDefault" firestore:"isDefault"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
