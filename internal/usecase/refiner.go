package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/YK12321/Budgeteer/internal/domain"
	"github.com/YK12321/Budgeteer/internal/infrastructure/llm"
)

const (
	defaultMaxIterations = 3
	cherryPickSkipSize   = 20
	cherryPickNameCap    = 50
	reasoningNameCap     = 30
	shortTermLength      = 5
)

// RefinerConfig holds configuration for the refinement engine
type RefinerConfig struct {
	MaxIterations int
}

// Refiner converges an initial item set toward a complete, relevant
// shopping list: one cherry-pick pass to cut an oversized set, a bounded
// loop of completeness reasoning with catalog replenishment, and a final
// lenient validation pass. Every remote judgment has a deterministic
// local fallback, so a dead or exhausted completion service degrades the
// answer, never fails it.
type Refiner struct {
	catalog       domain.Catalog
	completer     domain.Completer
	maxIterations int
}

// NewRefiner creates a refinement engine over the given catalog and
// completion provider.
func NewRefiner(catalog domain.Catalog, completer domain.Completer, cfg RefinerConfig) *Refiner {
	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	return &Refiner{
		catalog:       catalog,
		completer:     completer,
		maxIterations: maxIter,
	}
}

// Refine runs the full pipeline over the initial items for the original
// query. The returned set contains no duplicate names (case-insensitive).
func (r *Refiner) Refine(ctx context.Context, query string, initial []domain.Item) []domain.Item {
	working := dedupeByName(initial)
	working = r.cherryPick(ctx, query, working)

	for i := 0; i < r.maxIterations; i++ {
		outcome := r.reason(ctx, query, working)
		if outcome == nil {
			// Remote judgment unavailable: treat the list as complete.
			break
		}

		log.Printf("[REFINE] iteration %d complete=%v missing=%d unnecessary=%d",
			i+1, outcome.IsComplete, len(outcome.MissingItems), len(outcome.UnnecessaryItems))

		if outcome.IsComplete && len(outcome.MissingItems) == 0 && len(outcome.UnnecessaryItems) == 0 {
			break
		}

		next, modified := r.apply(working, outcome)
		working = next
		if !modified {
			break
		}
	}

	return r.validate(ctx, query, working)
}

// cherryPick asks the completion service to keep only names relevant to
// the query. Runs once per request and only when the working set is large;
// any failure falls back to the first cherryPickSkipSize items unchanged
// in relative order.
func (r *Refiner) cherryPick(ctx context.Context, query string, working []domain.Item) []domain.Item {
	if len(working) <= cherryPickSkipSize {
		return working
	}

	fallback := working[:cherryPickSkipSize]

	names := uniqueNames(working)
	if len(names) > cherryPickNameCap {
		names = names[:cherryPickNameCap]
	}

	response := r.completer.Complete(ctx, llm.CherryPickPrompt(query, names))
	if response == "" {
		return fallback
	}

	var selected []string
	if err := json.Unmarshal([]byte(llm.CleanJSONEnvelope(response)), &selected); err != nil {
		log.Printf("[REFINE] cherry-pick parse failed: %v", err)
		return fallback
	}

	var kept []domain.Item
	for _, item := range working {
		lowerName := strings.ToLower(item.Name)
		for _, sel := range selected {
			lowerSel := strings.ToLower(sel)
			if strings.Contains(lowerName, lowerSel) || strings.Contains(lowerSel, lowerName) {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept
}

// reason asks whether the current list is logically complete for the
// query. Returns nil when the remote judgment is unavailable or
// unparseable, which callers treat as "complete, stop iterating".
func (r *Refiner) reason(ctx context.Context, query string, working []domain.Item) *domain.ReasoningOutcome {
	names := uniqueNames(working)
	extra := 0
	if len(names) > reasoningNameCap {
		extra = len(names) - reasoningNameCap
		names = names[:reasoningNameCap]
	}

	response := r.completer.Complete(ctx, llm.CompletenessPrompt(query, names, extra))
	if response == "" {
		return nil
	}

	var outcome domain.ReasoningOutcome
	if err := json.Unmarshal([]byte(llm.CleanJSONEnvelope(response)), &outcome); err != nil {
		log.Printf("[REFINE] reasoning parse failed: %v", err)
		return nil
	}
	return &outcome
}

// apply removes unnecessary items by exact name and fills missing terms
// from the catalog, accepting only the first good match per term. Reports
// whether the working set changed.
func (r *Refiner) apply(working []domain.Item, outcome *domain.ReasoningOutcome) ([]domain.Item, bool) {
	modified := false

	if len(outcome.UnnecessaryItems) > 0 {
		var kept []domain.Item
		for _, item := range working {
			if containsName(outcome.UnnecessaryItems, item.Name) {
				modified = true
				continue
			}
			kept = append(kept, item)
		}
		working = kept
	}

	for _, term := range outcome.MissingItems {
		term = strings.TrimSpace(term)
		if term == "" || hasName(working, term) {
			continue
		}
		for _, candidate := range r.catalog.Search(term) {
			if !isGoodMatch(term, candidate.Name) {
				continue
			}
			if !hasName(working, candidate.Name) {
				working = append(working, candidate)
				modified = true
			}
			break
		}
	}

	return working, modified
}

// validate asks for items obviously wrong for the query and strips exact
// name matches; any failure leaves the list unchanged.
func (r *Refiner) validate(ctx context.Context, query string, working []domain.Item) []domain.Item {
	if len(working) == 0 {
		return working
	}

	response := r.completer.Complete(ctx, llm.ValidationPrompt(query, uniqueNames(working)))
	if response == "" {
		return working
	}

	var removals []string
	if err := json.Unmarshal([]byte(llm.CleanJSONEnvelope(response)), &removals); err != nil {
		log.Printf("[REFINE] validation parse failed: %v", err)
		return working
	}
	if len(removals) == 0 {
		return working
	}

	var kept []domain.Item
	for _, item := range working {
		if containsName(removals, item.Name) {
			log.Printf("[REFINE] validation removed %q", item.Name)
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// isGoodMatch reports whether a candidate name satisfies the
// boundary-aware substring rule for a requested term: the name starts
// with the term, the term appears bounded by spaces or parentheses, or a
// short term appears with non-alphanumeric boundaries on both sides. The
// boundary checks keep a short term from matching inside an unrelated
// longer word.
func isGoodMatch(term, name string) bool {
	lowerTerm := strings.ToLower(strings.TrimSpace(term))
	lowerName := strings.ToLower(name)
	if lowerTerm == "" {
		return false
	}

	if strings.HasPrefix(lowerName, lowerTerm) {
		return true
	}
	if boundedOccurrence(lowerName, lowerTerm, isSpaceOrParen) {
		return true
	}
	if len(lowerTerm) <= shortTermLength {
		return boundedOccurrence(lowerName, lowerTerm, isNonAlphanumeric)
	}
	return false
}

// boundedOccurrence reports whether term occurs in text with both
// neighboring characters (or the text edges) satisfying the boundary
// predicate.
func boundedOccurrence(text, term string, boundary func(byte) bool) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx == 0 || boundary(text[idx-1])
		end := idx + len(term)
		after := end == len(text) || boundary(text[end])
		if before && after {
			return true
		}
		start = idx + 1
	}
}

func isSpaceOrParen(c byte) bool {
	return c == ' ' || c == '(' || c == ')'
}

func isNonAlphanumeric(c byte) bool {
	isAlnum := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
	return !isAlnum
}

// dedupeByName keeps the first item per case-insensitive name, preserving
// order.
func dedupeByName(items []domain.Item) []domain.Item {
	seen := make(map[string]bool, len(items))
	var out []domain.Item
	for _, item := range items {
		key := strings.ToLower(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// uniqueNames returns the distinct item names in first-seen order
func uniqueNames(items []domain.Item) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		key := strings.ToLower(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item.Name)
	}
	return out
}

func hasName(items []domain.Item, name string) bool {
	lower := strings.ToLower(name)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), lower) {
			return true
		}
	}
	return false
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
