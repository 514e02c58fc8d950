package usecase

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"find milk", IntentSearch},
		{"search for bread", IntentSearch},
		{"look for detergent", IntentSearch},
		{"compare milk prices", IntentCompare},
		{"cheapest dish soap", IntentCompare},
		{"best price on diapers", IntentCompare},
		{"make me a shopping list", IntentShoppingList},
		{"I need to buy groceries", IntentShoppingList},
		{"get me snacks for the party", IntentShoppingList},
		{"what can I spend on dinner", IntentBudget},
		{"groceries under 50 dollars", IntentBudget},
		{"hello", IntentGeneric},
		{"", IntentGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := DetectIntent(tt.query); got != tt.want {
				t.Errorf("DetectIntent(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestDetectIntent_RuleOrder(t *testing.T) {
	// "cheapest" (compare) appears before "list" in the query, but the rule
	// order decides: search > compare > list > budget.
	if got := DetectIntent("find the cheapest list of snacks"); got != IntentSearch {
		t.Errorf("got %s, want SEARCH (first rule wins)", got)
	}
	if got := DetectIntent("cheapest shopping list"); got != IntentCompare {
		t.Errorf("got %s, want COMPARE (compare outranks list)", got)
	}
}

func TestIsSpecific(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"samsung tv", true},
		{"coke 2l", true},
		{"Tide pods", true},
		{"milk", false},
		{"snacks for the weekend", false},
	}

	for _, tt := range tests {
		if got := IsSpecific(tt.query); got != tt.want {
			t.Errorf("IsSpecific(%q) = %v, want %v", tt.query, got, tt.want)
		}
		if got := IsGeneric(tt.query); got == tt.want {
			t.Errorf("IsGeneric(%q) = %v, want %v", tt.query, got, !tt.want)
		}
	}
}

func TestIsSimple(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"short search query", "find milk", true},
		{"specific short query", "samsung 55 inch tv", true},
		{"long search query", "find me everything I could possibly want for a big weekend barbecue", false},
		{"generic list request", "I want to make pancakes this weekend", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSimple(tt.query); got != tt.want {
				t.Errorf("IsSimple(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
