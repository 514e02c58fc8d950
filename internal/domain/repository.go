package domain

import (
	"context"
	"time"
)

// Catalog defines read access to the loaded product snapshot. All methods
// return copies in load order; no match means an empty slice, never an error.
type Catalog interface {
	AllItems() []Item
	ItemsByID(id int) []Item
	ItemsByStore(store string) []Item
	ItemsByCategory(tag string) []Item
	ItemsByPriceRange(min, max float64) []Item
	Search(term string) []Item
}

// Completer defines the remote completion provider used for judgment calls.
// Complete returns the raw response text, or "" on any failure (transport,
// status, exhausted budget); callers treat "" as "fall back to local".
type Completer interface {
	CanCall() bool
	Complete(ctx context.Context, prompt string) string
}

// CacheRepository defines the interface for caching resolved responses
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
