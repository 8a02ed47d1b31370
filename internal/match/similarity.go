package match

import "strings"

// Similarity computes the Jaccard similarity of two strings over their
// whitespace-separated token sets: shared tokens divided by distinct tokens.
// The result is in [0,1], symmetric, and 1 for identical inputs. Two strings
// with no tokens at all score 0.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	union := len(setB)
	shared := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			shared++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
