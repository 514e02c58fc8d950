package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YK12321/Budgeteer/internal/domain"
)

// RankByCheapestMix groups items by product name, keeps the cheapest
// record per group, and returns the single "Mixed" result with the summed
// total cost.
func RankByCheapestMix(items []domain.Item) domain.RankedResult {
	groups := make(map[string]domain.Item)
	var order []string
	for _, item := range items {
		best, ok := groups[item.Name]
		if !ok {
			order = append(order, item.Name)
			groups[item.Name] = item
			continue
		}
		if item.CurrentPrice < best.CurrentPrice {
			groups[item.Name] = item
		}
	}

	sort.Strings(order)

	result := domain.RankedResult{Store: "Mixed"}
	for _, name := range order {
		item := groups[name]
		result.Items = append(result.Items, item)
		result.TotalCost += item.CurrentPrice
	}
	return result
}

// RankBySingleStore groups items by store and returns one result per
// store, cheapest total first; the first entry is the best single-store
// option.
func RankBySingleStore(items []domain.Item) []domain.RankedResult {
	groups := make(map[string]*domain.RankedResult)
	for _, item := range items {
		r, ok := groups[item.Store]
		if !ok {
			r = &domain.RankedResult{Store: item.Store}
			groups[item.Store] = r
		}
		r.Items = append(r.Items, item)
		r.TotalCost += item.CurrentPrice
	}

	results := make([]domain.RankedResult, 0, len(groups))
	for _, r := range groups {
		results = append(results, *r)
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].TotalCost != results[b].TotalCost {
			return results[a].TotalCost < results[b].TotalCost
		}
		return results[a].Store < results[b].Store
	})
	return results
}

// BudgetInsight summarizes the cost profile of an item set: total, average
// price, the cheapest single-store option, and the savings versus buying
// everything at that one store.
func BudgetInsight(items []domain.Item) string {
	if len(items) == 0 {
		return "No items to analyze."
	}

	total := 0.0
	for _, item := range items {
		total += item.CurrentPrice
	}

	byStore := RankBySingleStore(items)
	cheapest := byStore[0]

	var b strings.Builder
	b.WriteString("Budget Insight:\n")
	fmt.Fprintf(&b, "- Total items: %d\n", len(items))
	fmt.Fprintf(&b, "- Average price per item: $%.2f\n", total/float64(len(items)))
	fmt.Fprintf(&b, "- Cheapest single-store option: %s ($%.2f)\n", cheapest.Store, cheapest.TotalCost)
	fmt.Fprintf(&b, "- Potential savings: $%.2f by shopping at %s", total-cheapest.TotalCost, cheapest.Store)
	return b.String()
}

// FormatTable renders items as a markdown price table
func FormatTable(items []domain.Item) string {
	if len(items) == 0 {
		return "No items found matching your criteria."
	}

	var b strings.Builder
	b.WriteString("\n| Store     | Item                          | Price   | Notes              |\n")
	b.WriteString("|-----------|-------------------------------|---------|--------------------|\n")

	for _, item := range items {
		name := item.Name
		// Truncate on rune boundaries so multi-byte product names survive
		if runes := []rune(name); len(runes) > 29 {
			name = string(runes[:29])
		}
		fmt.Fprintf(&b, "| %-9s | %-29s | $%6.2f | %-18s |\n", item.Store, name, item.CurrentPrice, "In stock")
	}
	return b.String()
}
