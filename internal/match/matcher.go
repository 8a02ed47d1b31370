package match

import "strings"

// DefaultThreshold is the similarity score above which two normalized names
// are considered the same ingredient. Empirically chosen; override via config.
const DefaultThreshold = 0.6

// StockStatus classifies a single recipe ingredient against the pantry.
type StockStatus struct {
	Name    string `json:"name"`
	InStock bool   `json:"in_stock"`
}

// MatchStock classifies each ingredient line as in stock or not against the
// given pantry names. The result has one element per input line, in input
// order. An ingredient is in stock when any pantry item matches it: either
// name contains the other after normalization, or their similarity clears
// the threshold.
func MatchStock(ingredients, pantryNames []string, threshold float64) []StockStatus {
	normalized := make([]string, len(pantryNames))
	for i, p := range pantryNames {
		normalized[i] = Normalize(p)
	}

	result := make([]StockStatus, len(ingredients))
	for i, ing := range ingredients {
		result[i] = StockStatus{
			Name:    ing,
			InStock: anyMatch(Normalize(ing), normalized, threshold),
		}
	}
	return result
}

// Missing returns the names classified out of stock, preserving order.
func Missing(statuses []StockStatus) []string {
	var missing []string
	for _, s := range statuses {
		if !s.InStock {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

func anyMatch(ingredient string, normalizedPantry []string, threshold float64) bool {
	for _, pantry := range normalizedPantry {
		if matches(ingredient, pantry, threshold) {
			return true
		}
	}
	return false
}

func matches(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return Similarity(a, b) >= threshold
}
