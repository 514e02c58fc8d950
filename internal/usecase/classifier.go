package usecase

import "strings"

// Intent is the detected shopping intent of a raw query
type Intent int

const (
	IntentGeneric Intent = iota
	IntentSearch
	IntentCompare
	IntentShoppingList
	IntentBudget
)

func (i Intent) String() string {
	switch i {
	case IntentSearch:
		return "SEARCH"
	case IntentCompare:
		return "COMPARE"
	case IntentShoppingList:
		return "SHOPPING_LIST"
	case IntentBudget:
		return "BUDGET"
	default:
		return "GENERIC"
	}
}

// intentRules maps intents to their trigger keywords, checked in order;
// the first matching rule wins.
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentSearch, []string{"find", "search", "look for"}},
	{IntentCompare, []string{"compare", "cheapest", "best price"}},
	{IntentShoppingList, []string{"list", "buy", "need", "get me"}},
	{IntentBudget, []string{"budget", "spend", "cost", "under"}},
}

// specificIndicators are brand names and unit markers whose presence marks
// a query as specific rather than generic.
var specificIndicators = []string{
	"samsung", "apple", "lg", "sony", "coca-cola", "coke", "pepsi",
	"tide", "dawn", "pampers", "huggies", "2l", "500ml", "oz", "inch",
}

// DetectIntent classifies a query via ordered keyword containment checks
func DetectIntent(query string) Intent {
	lower := strings.ToLower(query)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneric
}

// IsSpecific reports whether the query names a brand or unit from the
// specificity vocabulary.
func IsSpecific(query string) bool {
	lower := strings.ToLower(query)
	for _, indicator := range specificIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// IsGeneric is the negation of IsSpecific
func IsGeneric(query string) bool {
	return !IsSpecific(query)
}

// IsSimple reports whether the query is unambiguous enough to skip remote
// reasoning: short with a direct search keyword, or specific and not much
// longer. Simple queries go straight to catalog search to conserve budget
// and latency.
func IsSimple(query string) bool {
	lower := strings.ToLower(query)
	if len(query) < 30 {
		for _, kw := range intentRules[0].keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return IsSpecific(query) && len(query) < 50
}
