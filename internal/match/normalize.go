// Package match decides whether recipe ingredients are available in a user's
// pantry. Ingredient lines and pantry names are free text entered on a phone
// or extracted from receipts, so everything is normalized before comparison.
package match

import (
	"regexp"
	"strings"
)

// Quantity and formatting noise: digits, vulgar fractions, slashes used in
// fractions, dashes and periods.
var noise = regexp.MustCompile(`[0-9¼½¾⅐⅑⅒⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞/.\-–]`)

// Normalize canonicalizes an ingredient or pantry name for comparison.
// It lower-cases the text, strips quantity noise and collapses whitespace.
// It never fails and is idempotent.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = noise.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
