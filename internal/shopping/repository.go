package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/cart"
)

// Repository handles persistence of shopping cart entries. Adds are
// consolidated against the rows already in the cart, so the same ingredient
// arriving twice keeps its first form.
type Repository struct {
	db           *sql.DB
	consolidator *cart.Consolidator
}

// NewRepository creates a new shopping cart repository.
func NewRepository(d *sql.DB, c *cart.Consolidator) *Repository {
	return &Repository{db: d, consolidator: c}
}

// ListByUser returns a user's cart entries in insertion order.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]CartEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, ingredient_text, normalized_key, quantity, metric, category, created_at
		FROM cart_entries
		WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart entries: %w", err)
	}
	defer rows.Close()

	var entries []CartEntry
	for rows.Next() {
		var e CartEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.IngredientText, &e.NormalizedKey, &e.Quantity, &e.Metric, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cart entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Add inserts the entries whose dedup key is not already present, in one
// transaction. Duplicates inside the batch collapse first-occurrence-wins.
// It returns the number of rows inserted.
func (r *Repository) Add(ctx context.Context, userID string, entries []CartEntry) (int, error) {
	for _, e := range entries {
		if e.IngredientText == "" {
			return 0, apperr.Validation("cart entry text is required")
		}
	}

	existing, err := r.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.NormalizedKey] = struct{}{}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cart_entries (user_id, ingredient_text, normalized_key, quantity, metric, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, e := range entries {
		key := r.consolidator.Key(e.IngredientText)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, err := stmt.ExecContext(ctx, userID, e.IngredientText, key, e.Quantity, e.Metric, e.Category, now); err != nil {
			return 0, fmt.Errorf("%w: cart insert: %v", apperr.ErrTransaction, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: cart insert commit: %v", apperr.ErrTransaction, err)
	}
	return inserted, nil
}

// Delete removes a user's entry by ID.
func (r *Repository) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("cart entry", fmt.Sprint(id))
	}
	return nil
}

// Clear removes all of a user's entries.
func (r *Repository) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_entries WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
