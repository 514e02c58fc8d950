package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/YK12321/Budgeteer/internal/domain"
	"github.com/YK12321/Budgeteer/internal/infrastructure/catalog"
)

// mockCache is an in-memory stand-in for domain.CacheRepository
type mockCache struct {
	data      map[string]interface{}
	getCalled int
	setCalled int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]interface{})}
}

func (m *mockCache) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled++
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled++
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func shopperCatalog() *catalog.Store {
	return catalog.NewStoreWithItems([]domain.Item{
		{ItemID: 1, Name: "Whole Milk", Description: "Dairy milk 2L", CurrentPrice: 4.99, Store: "Walmart"},
		{ItemID: 1, Name: "Whole Milk", Description: "Dairy milk 2L", CurrentPrice: 5.49, Store: "Loblaws"},
		{ItemID: 2, Name: "Whole Wheat Bread", Description: "Sliced loaf", CurrentPrice: 2.50, Store: "Walmart"},
		{ItemID: 3, Name: "Potato Chips", Description: "Salted snack", CurrentPrice: 3.49, Store: "Costco"},
		{ItemID: 4, Name: "Chocolate Cookies", Description: "Snack pack", CurrentPrice: 4.29, Store: "Walmart"},
	})
}

func newTestShopper(cache domain.CacheRepository) *Shopper {
	return NewShopper(shopperCatalog(), silentCompleter{}, cache, ShopperConfig{})
}

func TestProcessQuery_EmptyQuery(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	got := shopper.ProcessQuery(context.Background(), "   ", ModeCheapestMix)
	if got != "No data available for your query." {
		t.Errorf("ProcessQuery(empty) = %q", got)
	}
}

func TestProcessQuery_UnrecognizedIntent(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	got := shopper.ProcessQuery(context.Background(), "hello", ModeCheapestMix)
	if !strings.Contains(got, "couldn't process that query") {
		t.Errorf("ProcessQuery(hello) = %q", got)
	}
}

func TestProcessQuery_SimpleSearch(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	got := shopper.ProcessQuery(context.Background(), "find milk", ModeCheapestMix)
	if !strings.Contains(got, "cheapest options") {
		t.Errorf("missing cheapest-mix framing: %q", got)
	}
	if !strings.Contains(got, "Whole Milk") {
		t.Errorf("missing matched item: %q", got)
	}
	// Cheapest mix keeps one record per product at its lowest price
	if !strings.Contains(got, "$  4.99") || strings.Contains(got, "$  5.49") {
		t.Errorf("expected the 4.99 record only: %q", got)
	}
}

func TestProcessQuery_SingleStoreMode(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	got := shopper.ProcessQuery(context.Background(), "find milk", ModeSingleStore)
	if !strings.Contains(got, "Best single-store option: Walmart") {
		t.Errorf("expected Walmart as best store: %q", got)
	}
}

func TestProcessQuery_BudgetInsightMode(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	got := shopper.ProcessQuery(context.Background(), "find milk", ModeBudgetInsight)
	if !strings.Contains(got, "Budget Insight:") {
		t.Errorf("expected insight output: %q", got)
	}
}

func TestProcessQuery_NoMatches(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	got := shopper.ProcessQuery(context.Background(), "find xyzzyqqq", ModeCheapestMix)
	if got != "No data available for your query." {
		t.Errorf("ProcessQuery(no matches) = %q", got)
	}
}

func TestProcessQuery_CachesResolvedResponses(t *testing.T) {
	cache := newMockCache()
	shopper := newTestShopper(cache)
	ctx := context.Background()

	first := shopper.ProcessQuery(ctx, "find milk", ModeCheapestMix)
	if cache.setCalled != 1 {
		t.Fatalf("setCalled = %d, want 1", cache.setCalled)
	}

	// Same query normalizes to the same key and is served from cache
	second := shopper.ProcessQuery(ctx, "Find MILK!", ModeCheapestMix)
	if first != second {
		t.Errorf("cache returned different response:\n%q\n%q", first, second)
	}
	if cache.setCalled != 1 {
		t.Errorf("setCalled = %d after cache hit, want still 1", cache.setCalled)
	}
}

func TestProcessQuery_ModeChangesCacheKey(t *testing.T) {
	cache := newMockCache()
	shopper := newTestShopper(cache)
	ctx := context.Background()

	shopper.ProcessQuery(ctx, "find milk", ModeCheapestMix)
	shopper.ProcessQuery(ctx, "find milk", ModeSingleStore)

	if cache.setCalled != 2 {
		t.Errorf("setCalled = %d, want 2 (one per mode)", cache.setCalled)
	}
}

func TestGenerateShoppingList_EmptyRequest(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	_, err := shopper.GenerateShoppingList(context.Background(), "  ", 0)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}

func TestGenerateShoppingList_LocalOnly(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	items, err := shopper.GenerateShoppingList(context.Background(), "get me milk and bread for the week", 0)
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}

	names := make(map[string]float64)
	for _, item := range items {
		names[item.Name] = item.CurrentPrice
	}
	if price, ok := names["Whole Milk"]; !ok || price != 4.99 {
		t.Errorf("expected Whole Milk at cheapest price 4.99, got %v", names)
	}
	if _, ok := names["Whole Wheat Bread"]; !ok {
		t.Errorf("expected Whole Wheat Bread in list, got %v", names)
	}
}

func TestGenerateShoppingList_BudgetCap(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	// Milk (4.99, ranked first) exceeds 3.00 and is skipped; Bread (2.50)
	// still fits.
	items, err := shopper.GenerateShoppingList(context.Background(), "get me milk and bread for the week", 3.00)
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}

	total := 0.0
	for _, item := range items {
		total += item.CurrentPrice
	}
	if total > 3.00 {
		t.Errorf("total %v exceeds budget", total)
	}
	if len(items) != 1 || items[0].Name != "Whole Wheat Bread" {
		t.Errorf("items = %v, want only Whole Wheat Bread", items)
	}
}

func TestGenerateShoppingList_CategoryExpansion(t *testing.T) {
	shopper := newTestShopper(newMockCache())

	// Generic category request expands via the local table into concrete
	// product terms before searching.
	items, err := shopper.GenerateShoppingList(context.Background(), "get me some snacks please thanks", 0)
	if err != nil {
		t.Fatalf("GenerateShoppingList() error = %v", err)
	}

	names := make(map[string]bool)
	for _, item := range items {
		names[item.Name] = true
	}
	if !names["Potato Chips"] || !names["Chocolate Cookies"] {
		t.Errorf("snacks expansion missed expected products: %v", names)
	}
}

func TestNormalizeProductName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"coke", "Coca-Cola"},
		{"a 55 inch tv", "Television"},
		{"cheap laptop", "Notebook Computer"},
		{"milk", "milk"},
	}

	for _, tt := range tests {
		if got := NormalizeProductName(tt.in); got != tt.want {
			t.Errorf("NormalizeProductName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"SINGLE_STORE", ModeSingleStore},
		{"single_store", ModeSingleStore},
		{"BUDGET_INSIGHT", ModeBudgetInsight},
		{"CHEAPEST_MIX", ModeCheapestMix},
		{"", ModeCheapestMix},
		{"garbage", ModeCheapestMix},
	}

	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
