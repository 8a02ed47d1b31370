package shopping

import "time"

// CartEntry is one shopping list row. NormalizedKey is the dedup key
// computed by the cart consolidator; it is recomputed on write, never
// edited directly.
type CartEntry struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"-"`
	IngredientText string    `json:"ingredient_text"`
	NormalizedKey  string    `json:"-"`
	Quantity       string    `json:"quantity,omitempty"`
	Metric         string    `json:"metric,omitempty"`
	Category       string    `json:"category,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
