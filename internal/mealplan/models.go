package mealplan

import "time"

// Entry assigns a recipe to one day/meal-type slot of a week. A slot
// (user, week, day, meal type) holds at most one active entry; saving over
// it replaces, it does not accumulate.
type Entry struct {
	ID                int64     `json:"id"`
	UserID            string    `json:"-"`
	RecipeID          string    `json:"recipe_id"`
	MealType          string    `json:"meal_type"`
	DayOfWeek         string    `json:"day_of_week"`
	WeekID            string    `json:"week_id"`
	SavedPlanName     string    `json:"saved_plan_name,omitempty"`
	IsFavorited       bool      `json:"is_favorited"`
	Tags              string    `json:"tags,omitempty"`
	AddToShoppingList bool      `json:"add_to_shopping_list"`
	CreatedAt         time.Time `json:"created_at"`
}
