package pantry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pantry-planner/internal/apperr"
)

// Repository handles persistence of pantry items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new pantry repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ListByUser returns all pantry items of a user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, quantity, expiration_date, category, created_at
		FROM pantry_items
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Quantity, &it.ExpirationDate, &it.Category, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Names returns the item names of a user's pantry, for the matching engine.
func (r *Repository) Names(ctx context.Context, userID string) ([]string, error) {
	items, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names, nil
}

// Insert adds a single item and returns its ID.
func (r *Repository) Insert(ctx context.Context, item Item) (int64, error) {
	if item.Name == "" {
		return 0, apperr.Validation("pantry item name is required")
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pantry_items (user_id, name, quantity, expiration_date, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.UserID, item.Name, item.Quantity, item.ExpirationDate, item.Category, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert pantry item: %w", err)
	}
	return res.LastInsertId()
}

// BulkInsert adds all items in one transaction. Either every row is
// committed or none are.
func (r *Repository) BulkInsert(ctx context.Context, userID string, items []Item) error {
	for _, it := range items {
		if it.Name == "" {
			return apperr.Validation("pantry item name is required")
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pantry_items (user_id, name, quantity, expiration_date, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, userID, it.Name, it.Quantity, it.ExpirationDate, it.Category, now); err != nil {
			return fmt.Errorf("%w: pantry bulk insert: %v", apperr.ErrTransaction, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: pantry bulk insert commit: %v", apperr.ErrTransaction, err)
	}
	return nil
}

// Delete removes a user's item by ID.
func (r *Repository) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("pantry item", fmt.Sprint(id))
	}
	return nil
}
