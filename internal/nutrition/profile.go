// Package nutrition parses nutrient facts stored as free text ("450 kcal",
// "32g") and filters recipes against a user's nutrient target.
package nutrition

import (
	"regexp"
	"strconv"

	"pantry-planner/internal/apperr"
)

// Profile holds the nutrient facts of a recipe or a user target. Values are
// kept as stored: strings with embedded units. An empty string means the
// field is absent.
type Profile struct {
	Calories     string `json:"calories"`
	ProteinGrams string `json:"protein_grams"`
	CarbGrams    string `json:"carb_grams"`
	FatGrams     string `json:"fat_grams"`
}

// Fields returns the profile's present fields keyed by name, in a fixed
// order. Used by the tolerance filter to compare recipe and target pairwise.
func (p Profile) Fields() []Field {
	return []Field{
		{Name: "calories", Value: p.Calories},
		{Name: "protein_grams", Value: p.ProteinGrams},
		{Name: "carb_grams", Value: p.CarbGrams},
		{Name: "fat_grams", Value: p.FatGrams},
	}
}

// Field is one named nutrient value, still in stored form.
type Field struct {
	Name  string
	Value string
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseValue extracts the numeric magnitude from a stored nutrient value by
// discarding everything that is not a digit or decimal point. It returns
// ErrParse when nothing numeric survives.
func ParseValue(stored string) (float64, error) {
	cleaned := nonNumeric.ReplaceAllString(stored, "")
	if cleaned == "" {
		return 0, apperr.Parse("no numeric value in %q", stored)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, apperr.Parse("cannot parse %q as number", stored)
	}
	return v, nil
}
