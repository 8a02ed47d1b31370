package recipe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pantry-planner/internal/apperr"
)

// Repository is a database-backed repository for recipes and their joined
// nutrient facts.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or updates a recipe and its nutrient facts in one transaction.
func (r *Repository) Save(ctx context.Context, rec Recipe) error {
	if rec.ID == "" {
		return apperr.Validation("recipe id is required")
	}
	if rec.Title == "" {
		return apperr.Validation("recipe title is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, title, ingredients, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			ingredients = excluded.ingredients,
			source_url = excluded.source_url,
			updated_at = excluded.updated_at`,
		rec.ID, rec.Title, rec.Ingredients, rec.SourceURL, now, now)
	if err != nil {
		return fmt.Errorf("%w: save recipe: %v", apperr.ErrTransaction, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO nutrient_facts (recipe_id, calories, protein_grams, carb_grams, fat_grams)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(recipe_id) DO UPDATE SET
			calories = excluded.calories,
			protein_grams = excluded.protein_grams,
			carb_grams = excluded.carb_grams,
			fat_grams = excluded.fat_grams`,
		rec.ID, rec.Nutrients.Calories, rec.Nutrients.ProteinGrams, rec.Nutrients.CarbGrams, rec.Nutrients.FatGrams)
	if err != nil {
		return fmt.Errorf("%w: save nutrient facts: %v", apperr.ErrTransaction, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: save recipe commit: %v", apperr.ErrTransaction, err)
	}
	return nil
}

const selectRecipe = `
	SELECT r.id, r.title, r.ingredients, r.source_url, r.created_at, r.updated_at,
	       COALESCE(n.calories, ''), COALESCE(n.protein_grams, ''),
	       COALESCE(n.carb_grams, ''), COALESCE(n.fat_grams, '')
	FROM recipes r
	LEFT JOIN nutrient_facts n ON n.recipe_id = r.id`

func scanRecipe(row interface{ Scan(...any) error }) (Recipe, error) {
	var rec Recipe
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Ingredients, &rec.SourceURL, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.Nutrients.Calories, &rec.Nutrients.ProteinGrams,
		&rec.Nutrients.CarbGrams, &rec.Nutrients.FatGrams,
	)
	return rec, err
}

// Get retrieves a recipe by its ID.
func (r *Repository) Get(ctx context.Context, id string) (*Recipe, error) {
	rec, err := scanRecipe(r.db.QueryRowContext(ctx, selectRecipe+` WHERE r.id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("recipe", id)
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}
	return &rec, nil
}

// List retrieves all recipes, oldest first.
func (r *Repository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx, selectRecipe+` ORDER BY r.created_at, r.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// Count returns the number of recipes in the database.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}
