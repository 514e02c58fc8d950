package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/YK12321/Budgeteer/internal/domain"
	"github.com/YK12321/Budgeteer/internal/infrastructure/llm"
)

// Mode selects the ranking strategy for a resolved query
type Mode int

const (
	ModeCheapestMix Mode = iota // cheapest item per product across all stores
	ModeSingleStore             // minimize total cost at one store
	ModeBudgetInsight           // cost profile analysis
)

func (m Mode) String() string {
	switch m {
	case ModeSingleStore:
		return "SINGLE_STORE"
	case ModeBudgetInsight:
		return "BUDGET_INSIGHT"
	default:
		return "CHEAPEST_MIX"
	}
}

// ParseMode maps a wire mode string onto the closed Mode enum, defaulting
// to the cheapest-mix strategy.
func ParseMode(s string) Mode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SINGLE_STORE":
		return ModeSingleStore
	case "BUDGET_INSIGHT":
		return ModeBudgetInsight
	default:
		return ModeCheapestMix
	}
}

const (
	noDataMessage    = "No data available for your query."
	cannotProcessMsg = "I'm sorry, I couldn't process that query. Please try rephrasing."
)

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// defaultNormalizations maps colloquial product shorthand to catalog
// names, checked in order.
var defaultNormalizations = []struct{ key, name string }{
	{"coke", "Coca-Cola"},
	{"tv", "Television"},
	{"phone", "Smartphone"},
	{"laptop", "Notebook Computer"},
}

// ShopperConfig holds configuration for the shopper service
type ShopperConfig struct {
	CacheTTL           time.Duration
	MaxIterations      int
	CategoryExpansions map[string][]string
}

// Shopper is the query-facing surface of the core: it classifies a query,
// resolves catalog items directly or through the refinement pipeline, and
// formats the ranked answer. A TTL cache fronts resolved responses.
type Shopper struct {
	catalog    domain.Catalog
	completer  domain.Completer
	refiner    *Refiner
	cache      domain.CacheRepository
	cacheTTL   time.Duration
	expansions map[string][]string
}

// NewShopper creates the shopper service with its dependencies
func NewShopper(
	catalog domain.Catalog,
	completer domain.Completer,
	cache domain.CacheRepository,
	cfg ShopperConfig,
) *Shopper {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	expansions := cfg.CategoryExpansions
	if len(expansions) == 0 {
		expansions = DefaultCategoryExpansions()
	}

	return &Shopper{
		catalog:    catalog,
		completer:  completer,
		refiner:    NewRefiner(catalog, completer, RefinerConfig{MaxIterations: cfg.MaxIterations}),
		cache:      cache,
		cacheTTL:   ttl,
		expansions: expansions,
	}
}

// DefaultCategoryExpansions is the compiled-in category-to-products table
// used when configuration provides none.
func DefaultCategoryExpansions() map[string][]string {
	return map[string][]string{
		"snacks":        {"chips", "cookies", "granola bars", "crackers", "pretzels"},
		"dairy":         {"milk", "cheese", "yogurt", "butter", "cream"},
		"beverages":     {"water", "juice", "soda", "coffee", "tea"},
		"cleaning":      {"dish soap", "laundry detergent", "bleach", "wipes", "cleaner"},
		"personal care": {"shampoo", "soap", "toothpaste", "deodorant", "lotion"},
		"baby":          {"diapers", "wipes", "formula", "baby food", "shampoo"},
	}
}

// ProcessQuery resolves a natural-language query into formatted text using
// the given ranking mode. Empty or unanswerable queries yield a canned
// message, never an error.
func (s *Shopper) ProcessQuery(ctx context.Context, query string, mode Mode) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return noDataMessage
	}

	cacheKey := s.cacheKey(query, mode)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if text, ok := cached.(string); ok {
				log.Printf("[SHOPPER] cache hit for %q", query)
				return text
			}
		}
	}

	intent := DetectIntent(query)
	log.Printf("[SHOPPER] query=%q intent=%s mode=%s", query, intent, mode)

	switch intent {
	case IntentSearch, IntentCompare, IntentShoppingList:
		items := s.resolveItems(ctx, query, intent)
		response := s.formatResponse(items, mode)
		if s.cache != nil {
			if err := s.cache.Set(ctx, cacheKey, response, s.cacheTTL); err != nil {
				log.Printf("[SHOPPER] cache set failed: %v", err)
			}
		}
		return response
	default:
		return cannotProcessMsg
	}
}

// GenerateShoppingList assembles a deduplicated, cheapest-per-product
// shopping list for a free-text request. A positive budget caps the list
// greedily: items are kept in ranked order while the running total fits.
func (s *Shopper) GenerateShoppingList(ctx context.Context, request string, budget float64) ([]domain.Item, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, domain.ErrInvalidRequest
	}

	items := s.resolveItems(ctx, request, IntentShoppingList)
	ranked := RankByCheapestMix(items).Items

	if budget <= 0 {
		return ranked, nil
	}

	total := 0.0
	var kept []domain.Item
	for _, item := range ranked {
		if total+item.CurrentPrice > budget {
			continue
		}
		kept = append(kept, item)
		total += item.CurrentPrice
	}
	return kept, nil
}

// Insight returns the budget analysis text for an item set
func (s *Shopper) Insight(items []domain.Item) string {
	return BudgetInsight(items)
}

// resolveItems turns a query into catalog items. Simple queries search
// directly; list-style or generic queries expand into terms (remotely when
// the completion service is available, locally otherwise) and run through
// the refinement pipeline.
func (s *Shopper) resolveItems(ctx context.Context, query string, intent Intent) []domain.Item {
	if IsSimple(query) {
		log.Printf("[SHOPPER] simple query, direct search")
		return s.catalog.Search(strings.TrimSpace(query))
	}

	terms := s.extractTerms(ctx, query)

	var collected []domain.Item
	for _, term := range terms {
		collected = append(collected, s.catalog.Search(term)...)
	}

	if intent == IntentShoppingList || len(terms) > 1 {
		return s.refiner.Refine(ctx, query, collected)
	}
	return collected
}

// extractTerms derives catalog search terms from the query, preferring the
// remote analysis and falling back to the local category-expansion table.
func (s *Shopper) extractTerms(ctx context.Context, query string) []string {
	if s.completer != nil && s.completer.CanCall() {
		if terms := s.extractTermsRemote(ctx, query); len(terms) > 0 {
			return terms
		}
	}
	return s.extractTermsLocal(query)
}

func (s *Shopper) extractTermsRemote(ctx context.Context, query string) []string {
	response := s.completer.Complete(ctx, llm.QueryAnalysisPrompt(query))
	if response == "" {
		return nil
	}

	var parsed struct {
		Intent string   `json:"intent"`
		Terms  []string `json:"terms"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONEnvelope(response)), &parsed); err != nil {
		log.Printf("[SHOPPER] query analysis parse failed: %v", err)
		return nil
	}

	var terms []string
	for _, t := range parsed.Terms {
		t = strings.TrimSpace(t)
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func (s *Shopper) extractTermsLocal(query string) []string {
	lower := strings.ToLower(query)

	if IsGeneric(query) {
		categories := make([]string, 0, len(s.expansions))
		for category := range s.expansions {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			if strings.Contains(lower, category) {
				products := s.expansions[category]
				log.Printf("[SHOPPER] expanded category %q into %d terms", category, len(products))
				return products
			}
		}
	}

	return []string{NormalizeProductName(query)}
}

// NormalizeProductName rewrites colloquial shorthand into the catalog's
// product naming; unknown names pass through unchanged.
func NormalizeProductName(name string) string {
	lower := strings.ToLower(name)
	for _, n := range defaultNormalizations {
		if strings.Contains(lower, n.key) {
			return n.name
		}
	}
	return name
}

// formatResponse renders resolved items per the ranking mode
func (s *Shopper) formatResponse(items []domain.Item, mode Mode) string {
	if len(items) == 0 {
		return noDataMessage
	}

	switch mode {
	case ModeSingleStore:
		ranked := RankBySingleStore(items)
		best := ranked[0]
		return fmt.Sprintf("Best single-store option: %s\n%s\nTotal: $%.2f",
			best.Store, FormatTable(best.Items), best.TotalCost)
	case ModeBudgetInsight:
		return BudgetInsight(items)
	default:
		ranked := RankByCheapestMix(items)
		return fmt.Sprintf("Here are the cheapest options across all stores:\n%s\nTotal: $%.2f",
			FormatTable(ranked.Items), ranked.TotalCost)
	}
}

// cacheKey builds a normalized cache key from query and mode
func (s *Shopper) cacheKey(query string, mode Mode) string {
	normalized := strings.ToLower(query)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("query:%s:%s", strings.TrimSpace(normalized), mode)
}
