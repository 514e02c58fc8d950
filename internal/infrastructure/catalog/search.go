package catalog

import (
	"sort"
	"strings"

	"github.com/YK12321/Budgeteer/internal/domain"
)

// Scoring signals, summed per item. Similarity is only computed for items
// that have not already matched strongly (score < similaritySkip) to avoid
// paying for edit distance on obvious hits.
const (
	exactNameBonus   = 200.0
	prefixNameBonus  = 150.0
	nameContainBonus = 100.0
	descContainBonus = 40.0
	similarityWeight = 60.0
	similaritySkip   = 100.0
	wordInNameBonus  = 25.0
	wordInDescBonus  = 10.0

	minScoreThreshold = 15.0
	maxSearchResults  = 50
	minWordLength     = 3
)

type scoredItem struct {
	item  domain.Item
	score float64
	order int
}

// Search ranks catalog items against a free-text term and returns at most
// maxSearchResults items whose composite score exceeds the threshold,
// highest score first with load order as the tie-break. An empty term
// returns nothing.
func (s *Store) Search(term string) []domain.Item {
	if term == "" {
		return nil
	}

	lowerTerm := strings.ToLower(term)
	words := strings.Fields(term)

	var scored []scoredItem
	for i, item := range s.items {
		score := scoreItem(item, lowerTerm, words)
		if score > minScoreThreshold {
			scored = append(scored, scoredItem{item: item, score: score, order: i})
		}
	}

	sort.Slice(scored, func(a, b int) bool {
		if scored[a].score != scored[b].score {
			return scored[a].score > scored[b].score
		}
		return scored[a].order < scored[b].order
	})

	n := len(scored)
	if n > maxSearchResults {
		n = maxSearchResults
	}
	out := make([]domain.Item, 0, n)
	for _, sc := range scored[:n] {
		out = append(out, sc.item)
	}
	return out
}

// scoreItem computes the additive relevance score of one item against the
// lowercased search term and its whitespace-delimited words.
func scoreItem(item domain.Item, lowerTerm string, words []string) float64 {
	lowerName := strings.ToLower(item.Name)
	lowerDesc := strings.ToLower(item.Description)

	score := 0.0

	// Exact and prefix matches get large boosts so common short grocery
	// terms ("flour", "sugar") rank their own product first.
	switch {
	case lowerName == lowerTerm:
		score += exactNameBonus
	case strings.HasPrefix(lowerName, lowerTerm+" ") || strings.HasPrefix(lowerName, lowerTerm+" ("):
		score += prefixNameBonus
	case strings.Contains(lowerName, lowerTerm):
		score += nameContainBonus
	}

	if strings.Contains(lowerDesc, lowerTerm) {
		score += descContainBonus
	}

	// Edit-distance similarity catches misspellings; skip it once the item
	// has already matched strongly.
	if score < similaritySkip {
		score += similarity(lowerTerm, lowerName) * similarityWeight
	}

	for _, word := range words {
		if len(word) < minWordLength {
			continue
		}
		lowerWord := strings.ToLower(word)
		if strings.Contains(lowerName, lowerWord) {
			score += wordInNameBonus
		}
		if strings.Contains(lowerDesc, lowerWord) {
			score += wordInDescBonus
		}
	}

	return score
}

// similarity returns a normalized edit-distance score between 0 and 1,
// higher meaning more similar.
func similarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0
	}
	distance := levenshteinDistance(s1, s2)
	maxLen := len([]rune(s1))
	if l := len([]rune(s2)); l > maxLen {
		maxLen = l
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
