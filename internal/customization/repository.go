package customization

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/nutrition"
)

// Repository handles persistence of customizations.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new customization repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts a customization and returns its ID. A zero tolerance is
// replaced with the default.
func (r *Repository) Save(ctx context.Context, c Customization) (int64, error) {
	if c.Tolerance == 0 {
		c.Tolerance = nutrition.DefaultTolerance
	}
	if err := c.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO customizations (user_id, name, calories, protein_grams, carb_grams, fat_grams, tolerance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Name, c.Target.Calories, c.Target.ProteinGrams, c.Target.CarbGrams, c.Target.FatGrams,
		c.Tolerance, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert customization: %w", err)
	}
	return res.LastInsertId()
}

// Get retrieves a user's customization by ID.
func (r *Repository) Get(ctx context.Context, userID string, id int64) (*Customization, error) {
	var c Customization
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, calories, protein_grams, carb_grams, fat_grams, tolerance, created_at
		FROM customizations
		WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Target.Calories, &c.Target.ProteinGrams,
			&c.Target.CarbGrams, &c.Target.FatGrams, &c.Tolerance, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("customization", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("failed to get customization: %w", err)
	}
	return &c, nil
}

// ListByUser returns all customizations of a user.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Customization, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, calories, protein_grams, carb_grams, fat_grams, tolerance, created_at
		FROM customizations
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customizations: %w", err)
	}
	defer rows.Close()

	var out []Customization
	for rows.Next() {
		var c Customization
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Target.Calories, &c.Target.ProteinGrams,
			&c.Target.CarbGrams, &c.Target.FatGrams, &c.Tolerance, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customization: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a user's customization by ID.
func (r *Repository) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customizations WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete customization: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperr.NotFound("customization", fmt.Sprint(id))
	}
	return nil
}
