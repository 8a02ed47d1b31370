// Package customization stores user-defined nutrient goals and generates
// candidate daily plans from them.
package customization

import (
	"time"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/nutrition"
)

// DefaultResultCap bounds the candidate list generated from a
// customization.
const DefaultResultCap = 50

// Customization is a named nutrient target with a tolerance fraction
// applied symmetrically to each target field.
type Customization struct {
	ID        int64             `json:"id"`
	UserID    string            `json:"-"`
	Name      string            `json:"name"`
	Target    nutrition.Profile `json:"target"`
	Tolerance float64           `json:"tolerance"`
	CreatedAt time.Time         `json:"created_at"`
}

// Validate checks the fields required before a customization can be saved
// or applied. Target calories are mandatory; the other fields are optional.
func (c Customization) Validate() error {
	if c.Name == "" {
		return apperr.Validation("customization name is required")
	}
	if c.Target.Calories == "" {
		return apperr.Validation("customization target calories are required")
	}
	if _, err := nutrition.ParseValue(c.Target.Calories); err != nil {
		return err
	}
	if c.Tolerance < 0 || c.Tolerance >= 1 {
		return apperr.Validation("tolerance must be in [0, 1)")
	}
	return nil
}
