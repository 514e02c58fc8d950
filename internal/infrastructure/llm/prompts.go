package llm

import (
	"fmt"
	"strings"
)

// Prompt templates are data, not code. Each one instructs the model to
// answer with a single raw JSON value and no prose wrapper; the caller
// still runs the response through CleanJSONEnvelope before parsing.

// QueryAnalysisPrompt asks for the shopping intent and the concrete
// product terms to search the catalog for.
func QueryAnalysisPrompt(query string) string {
	return fmt.Sprintf(`You are a shopping assistant for a grocery price-comparison service.
Analyze this user query and extract the concrete product search terms it implies.

Query: %q

Rules:
- Expand vague categories into 3-6 specific everyday products (e.g. "snacks" -> chips, cookies, crackers).
- Keep explicitly named products as-is.
- Terms must be short product names suitable for a catalog search, no sizes or brands unless the user gave them.

Respond with a single raw JSON object, no markdown, no explanation:
{"intent": "SEARCH|COMPARE|SHOPPING_LIST|BUDGET|GENERIC", "terms": ["term1", "term2"]}`, query)
}

// CherryPickPrompt asks for the subset of candidate product names that are
// directly relevant to the query.
func CherryPickPrompt(query string, names []string) string {
	return fmt.Sprintf(`You are filtering catalog search results for a shopping query.

Query: %q

Candidate products:
%s

Select ONLY the product names directly relevant to the query. Drop anything
unrelated. Use the exact names as given.

Respond with a single raw JSON array of strings, no markdown, no explanation:
["name1", "name2"]`, query, bulletList(names))
}

// CompletenessPrompt asks whether the current list logically covers the
// task implied by the query, plus what to add or drop. extra is how many
// additional items were elided from the shown list.
func CompletenessPrompt(query string, names []string, extra int) string {
	shown := bulletList(names)
	if extra > 0 {
		shown += fmt.Sprintf("... and %d more items\n", extra)
	}
	return fmt.Sprintf(`You are reviewing a shopping list for completeness.

Original request: %q

Current list:
%s
Is this list logically complete for the request (e.g. all ingredients for an
implied recipe)? Suggest at most 4 missing product terms and at most 4
unnecessary item names (exact names from the list).

Respond with a single raw JSON object, no markdown, no explanation:
{"is_complete": true, "reasoning": "short explanation", "missing_items": [], "unnecessary_items": []}`, query, shown)
}

// ValidationPrompt asks for items that are obviously wrong for the query.
// The bias is lenient: anything plausibly related stays.
func ValidationPrompt(query string, names []string) string {
	return fmt.Sprintf(`Final check of a shopping list before it is shown to the user.

Original request: %q

List:
%s
Return ONLY items that are obviously wrong for this request. Be lenient:
keep anything plausibly related. Use the exact names as given.

Respond with a single raw JSON array of strings (empty array if all fit),
no markdown, no explanation:
["name1"]`, query, bulletList(names))
}

func bulletList(names []string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteString("- ")
		b.WriteString(n)
		b.WriteString("\n")
	}
	return b.String()
}
