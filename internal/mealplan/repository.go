package mealplan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pantry-planner/internal/apperr"
)

// Repository handles persistence of meal plan entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new meal plan repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// GetWeek returns all entries of a user's week.
func (r *Repository) GetWeek(ctx context.Context, userID, weekID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, recipe_id, meal_type, day_of_week, week_id,
		       saved_plan_name, is_favorited, tags, add_to_shopping_list, created_at
		FROM meal_plan_entries
		WHERE user_id = ? AND week_id = ?
		ORDER BY id`, userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("failed to get week entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.RecipeID, &e.MealType, &e.DayOfWeek, &e.WeekID,
			&e.SavedPlanName, &e.IsFavorited, &e.Tags, &e.AddToShoppingList, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceWeek deletes the existing rows of a user's week and inserts the
// given entries, all in one transaction. Partial application would leave
// some days on the old plan, so any failure rolls the whole write back.
func (r *Repository) ReplaceWeek(ctx context.Context, userID, weekID string, entries []Entry) error {
	for _, e := range entries {
		if e.RecipeID == "" || e.MealType == "" || e.DayOfWeek == "" {
			return apperr.Validation("meal plan entry needs recipe, meal type and day")
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM meal_plan_entries WHERE user_id = ? AND week_id = ?`, userID, weekID); err != nil {
		return fmt.Errorf("%w: delete week rows: %v", apperr.ErrTransaction, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO meal_plan_entries
			(user_id, recipe_id, meal_type, day_of_week, week_id,
			 saved_plan_name, is_favorited, tags, add_to_shopping_list, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, userID, e.RecipeID, e.MealType, e.DayOfWeek, weekID,
			e.SavedPlanName, e.IsFavorited, e.Tags, e.AddToShoppingList, now); err != nil {
			return fmt.Errorf("%w: insert week row: %v", apperr.ErrTransaction, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: replace week commit: %v", apperr.ErrTransaction, err)
	}
	return nil
}

// ReplaceDay swaps the entries of a single day inside a week, atomically.
// Used by the day refresh flow.
func (r *Repository) ReplaceDay(ctx context.Context, userID, weekID, dayOfWeek string, entries []Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM meal_plan_entries WHERE user_id = ? AND week_id = ? AND day_of_week = ?`,
		userID, weekID, dayOfWeek); err != nil {
		return fmt.Errorf("%w: delete day rows: %v", apperr.ErrTransaction, err)
	}

	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO meal_plan_entries
				(user_id, recipe_id, meal_type, day_of_week, week_id,
				 saved_plan_name, is_favorited, tags, add_to_shopping_list, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, e.RecipeID, e.MealType, dayOfWeek, weekID,
			e.SavedPlanName, e.IsFavorited, e.Tags, e.AddToShoppingList, now); err != nil {
			return fmt.Errorf("%w: insert day row: %v", apperr.ErrTransaction, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: replace day commit: %v", apperr.ErrTransaction, err)
	}
	return nil
}

// SetFavorited flags or unflags one entry.
func (r *Repository) SetFavorited(ctx context.Context, userID string, id int64, favorited bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE meal_plan_entries SET is_favorited = ? WHERE id = ? AND user_id = ?`,
		favorited, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update favorite flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("meal plan entry", fmt.Sprint(id))
	}
	return nil
}
