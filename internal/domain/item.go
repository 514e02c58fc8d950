package domain

import "strings"

// Item is one priced product record tied to a specific store and price date.
// The same ItemID recurs across stores and dates; records are immutable once
// loaded and the catalog hands out copies.
type Item struct {
	ItemID       int      `json:"item_id"`
	Name         string   `json:"item_name"`
	Description  string   `json:"item_description"`
	CurrentPrice float64  `json:"current_price"`
	Store        string   `json:"store"`
	CategoryTags []string `json:"category_tags"`
	ImageURL     string   `json:"image_url"`
	PriceDate    string   `json:"price_date"`
}

// HasCategory reports whether the item carries the given category tag
// (case-insensitive).
func (i Item) HasCategory(tag string) bool {
	for _, t := range i.CategoryTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// RankedResult is a named group of items with its total cost. Store is
// "Mixed" for the cheapest-across-stores strategy, otherwise a store name.
type RankedResult struct {
	Store     string  `json:"store"`
	Items     []Item  `json:"items"`
	TotalCost float64 `json:"total_cost"`
}

// ReasoningOutcome is one completeness judgment over a working shopping
// list: whether it covers the implied task, plus candidate terms to add
// and item names to drop.
type ReasoningOutcome struct {
	IsComplete       bool     `json:"is_complete"`
	Reasoning        string   `json:"reasoning"`
	MissingItems     []string `json:"missing_items"`
	UnnecessaryItems []string `json:"unnecessary_items"`
}
