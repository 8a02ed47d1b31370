// Package cart deduplicates free-text shopping list entries. Entries arrive
// from several sources (missing-ingredient flow, manual adds, structured
// receipt rows) and the same ingredient shows up phrased differently, so
// entries are reduced to a canonical key before comparison.
package cart

import (
	"regexp"
	"strings"
)

// DefaultStopwords are quantity words, units and recipe qualifiers removed
// before keying. The list is a product heuristic, not an ingredient
// ontology: distinct ingredients that reduce to the same key will collapse.
var DefaultStopwords = []string{
	"cup", "cups", "tbsp", "tablespoon", "tablespoons", "tsp", "teaspoon", "teaspoons",
	"oz", "ounce", "ounces", "lb", "lbs", "pound", "pounds",
	"g", "gram", "grams", "kg", "ml", "l", "liter", "liters",
	"pinch", "dash", "clove", "cloves", "slice", "slices", "piece", "pieces",
	"can", "cans", "jar", "jars", "bunch", "head",
	"large", "small", "medium", "fresh", "dried", "ground",
	"chopped", "minced", "diced", "sliced", "grated", "shredded", "crushed", "peeled",
	"of", "to", "taste", "optional",
	"onion", "garlic", "water",
}

var (
	digits      = regexp.MustCompile(`[0-9]+`)
	parenAsides = regexp.MustCompile(`\([^)]*\)`)
	nonLetter   = regexp.MustCompile(`[^a-z\s]`)
)

// Consolidator deduplicates entries by canonical key.
type Consolidator struct {
	stopwords map[string]struct{}
}

// New creates a Consolidator with the given stopword list.
func New(stopwords []string) *Consolidator {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Consolidator{stopwords: set}
}

// Default creates a Consolidator with DefaultStopwords.
func Default() *Consolidator {
	return New(DefaultStopwords)
}

// Key reduces an entry to its dedup key: parenthesized asides and digits
// stripped, lower-cased, punctuation removed, stopwords dropped.
func (c *Consolidator) Key(entry string) string {
	s := strings.ToLower(entry)
	s = parenAsides.ReplaceAllString(s, " ")
	s = digits.ReplaceAllString(s, " ")
	s = nonLetter.ReplaceAllString(s, " ")

	var kept []string
	for _, tok := range strings.Fields(s) {
		if _, drop := c.stopwords[tok]; !drop {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// Consolidate drops entries whose key was already seen, keeping the first
// occurrence and the input order.
func (c *Consolidator) Consolidate(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, entry := range entries {
		key := c.Key(entry)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}
