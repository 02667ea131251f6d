package models

import "time"

// User is the backend profile of an authenticated customer. The phone
// number doubles as the document ID; auth itself lives with Firebase.
type User struct {
	Phone       string    `json:"phone" firestore:"phone"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Email       string    `json:"email,omitempty" firestore:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
