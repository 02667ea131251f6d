package cache

import "time"

// Cache is the read-through cache used by the catalog, content and search
// services. Callers treat a nil Cache as "caching disabled" and go
// straight to Firestore.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}
