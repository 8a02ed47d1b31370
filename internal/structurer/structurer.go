// Package structurer turns a free-text list of missing ingredients into
// rows ready for cart insertion. Consolidation happens afterward, in the
// shopping repository, not here.
package structurer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/shared"
)

// StructuredIngredient is one structured row for the cart.
type StructuredIngredient struct {
	ItemName string `json:"item_name"`
	Quantity string `json:"quantity"`
	Metric   string `json:"metric"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// Structurer structures missing-ingredient lines for the shopping cart.
type Structurer struct {
	textGen llm.TextGenerator
}

// New creates a Structurer.
func New(textGen llm.TextGenerator) *Structurer {
	return &Structurer{textGen: textGen}
}

// Structure converts the missing-ingredient lines into structured rows.
// Malformed model output is a ParseError; rows missing the item name are
// rejected at the boundary rather than propagated half-empty.
func (s *Structurer) Structure(ctx context.Context, missing []string) ([]StructuredIngredient, shared.AgentMeta, error) {
	meta := shared.AgentMeta{AgentName: "ingredient-structurer"}
	if len(missing) == 0 {
		return nil, meta, apperr.Validation("no missing ingredients to structure")
	}

	prompt := fmt.Sprintf(`
You are a shopping list assistant. For each ingredient line below, produce a structured shopping row.
Return the result strictly as a JSON object with this structure:
{
  "items": [
    {
      "item_name": "canonical ingredient name",
      "quantity": "numeric amount as text, e.g. 2",
      "metric": "unit, e.g. lb, g, count",
      "category": "store section such as Produce, Dairy, Meat, Pantry",
      "status": "pending"
    }
  ]
}
One row per input line, in the same order. Do not include any other text in your response.

Ingredient lines:
%s
`, strings.Join(missing, "\n"))

	start := time.Now()
	resp, err := s.textGen.GenerateContent(ctx, prompt)
	meta.Latency = time.Since(start)
	meta.Usage = resp.Usage
	if err != nil {
		return nil, meta, fmt.Errorf("failed to get structurer response: %w", err)
	}

	var parsed struct {
		Items []StructuredIngredient `json:"items"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, meta, apperr.Parse("malformed structurer output: %v", err)
	}
	if len(parsed.Items) == 0 {
		return nil, meta, apperr.Parse("structurer returned no rows")
	}
	for i, item := range parsed.Items {
		if item.ItemName == "" {
			return nil, meta, apperr.Parse("structurer row %d missing item_name", i)
		}
	}

	return parsed.Items, meta, nil
}
