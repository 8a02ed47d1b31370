package recipe

import (
	"strings"
	"time"

	"pantry-planner/internal/nutrition"
)

// Recipe is a stored recipe. Ingredients are kept as newline-delimited free
// text, one line per ingredient, exactly as captured.
type Recipe struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Ingredients string            `json:"ingredients"`
	SourceURL   string            `json:"source_url,omitempty"`
	Nutrients   nutrition.Profile `json:"nutrients"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// IngredientLines splits the stored ingredient text into one line per
// ingredient, dropping blank lines.
func (r Recipe) IngredientLines() []string {
	var lines []string
	for _, line := range strings.Split(r.Ingredients, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
