package catalog

import (
	"sort"

	"github.com/YK12321/Budgeteer/internal/domain"
)

// Store holds the full product snapshot in memory. It is read-only after
// load and safe for concurrent readers without locking.
type Store struct {
	items []domain.Item
}

// NewStore creates an empty catalog store
func NewStore() *Store {
	return &Store{}
}

// NewStoreWithItems creates a store pre-populated with the given records,
// preserving their order as load order.
func NewStoreWithItems(items []domain.Item) *Store {
	s := &Store{items: make([]domain.Item, len(items))}
	copy(s.items, items)
	return s
}

// Count returns the number of loaded records
func (s *Store) Count() int {
	return len(s.items)
}

// AllItems returns a copy of every record in load order
func (s *Store) AllItems() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// ItemsByID returns every record sharing the given product id
func (s *Store) ItemsByID(id int) []domain.Item {
	var out []domain.Item
	for _, item := range s.items {
		if item.ItemID == id {
			out = append(out, item)
		}
	}
	return out
}

// ItemsByStore returns every record priced at the given store
func (s *Store) ItemsByStore(store string) []domain.Item {
	var out []domain.Item
	for _, item := range s.items {
		if item.Store == store {
			out = append(out, item)
		}
	}
	return out
}

// ItemsByCategory returns every record tagged with the given category
func (s *Store) ItemsByCategory(tag string) []domain.Item {
	var out []domain.Item
	for _, item := range s.items {
		if item.HasCategory(tag) {
			out = append(out, item)
		}
	}
	return out
}

// ItemsByPriceRange returns every record priced within [min, max].
// A reversed range matches nothing.
func (s *Store) ItemsByPriceRange(min, max float64) []domain.Item {
	var out []domain.Item
	for _, item := range s.items {
		if item.CurrentPrice >= min && item.CurrentPrice <= max {
			out = append(out, item)
		}
	}
	return out
}

// AveragePrice returns the mean price across all records sharing the id,
// or 0 when the id is absent.
func (s *Store) AveragePrice(id int) float64 {
	matches := s.ItemsByID(id)
	if len(matches) == 0 {
		return 0
	}
	sum := 0.0
	for _, item := range matches {
		sum += item.CurrentPrice
	}
	return sum / float64(len(matches))
}

// MinPrice returns the lowest recorded price for the id, or 0 when absent
func (s *Store) MinPrice(id int) float64 {
	matches := s.ItemsByID(id)
	if len(matches) == 0 {
		return 0
	}
	min := matches[0].CurrentPrice
	for _, item := range matches[1:] {
		if item.CurrentPrice < min {
			min = item.CurrentPrice
		}
	}
	return min
}

// MaxPrice returns the highest recorded price for the id, or 0 when absent
func (s *Store) MaxPrice(id int) float64 {
	matches := s.ItemsByID(id)
	if len(matches) == 0 {
		return 0
	}
	max := matches[0].CurrentPrice
	for _, item := range matches[1:] {
		if item.CurrentPrice > max {
			max = item.CurrentPrice
		}
	}
	return max
}

// Stores returns the deduplicated store names, sorted
func (s *Store) Stores() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range s.items {
		if !seen[item.Store] {
			seen[item.Store] = true
			out = append(out, item.Store)
		}
	}
	sort.Strings(out)
	return out
}

// Categories returns the deduplicated category tags, sorted
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range s.items {
		for _, tag := range item.CategoryTags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}
