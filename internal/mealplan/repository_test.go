package mealplan

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/database"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "mealplan_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func TestReplaceWeek(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := []Entry{
		{RecipeID: "r1", MealType: "dinner", DayOfWeek: "Monday"},
		{RecipeID: "r2", MealType: "dinner", DayOfWeek: "Tuesday"},
	}
	if err := repo.ReplaceWeek(ctx, "u1", "2025-W29", first); err != nil {
		t.Fatalf("ReplaceWeek failed: %v", err)
	}

	// Saving over the same week replaces, it does not accumulate.
	second := []Entry{
		{RecipeID: "r3", MealType: "dinner", DayOfWeek: "Monday"},
	}
	if err := repo.ReplaceWeek(ctx, "u1", "2025-W29", second); err != nil {
		t.Fatalf("ReplaceWeek failed: %v", err)
	}

	entries, err := repo.GetWeek(ctx, "u1", "2025-W29")
	if err != nil {
		t.Fatalf("GetWeek failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry after replace, got %d", len(entries))
	}
	if entries[0].RecipeID != "r3" {
		t.Errorf("Expected recipe r3, got %s", entries[0].RecipeID)
	}

	t.Run("other weeks untouched", func(t *testing.T) {
		if err := repo.ReplaceWeek(ctx, "u1", "2025-W30", first); err != nil {
			t.Fatalf("ReplaceWeek failed: %v", err)
		}
		entries, err := repo.GetWeek(ctx, "u1", "2025-W29")
		if err != nil {
			t.Fatalf("GetWeek failed: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("Week 29 must keep its entry, got %d", len(entries))
		}
	})

	t.Run("incomplete entry rejected", func(t *testing.T) {
		bad := []Entry{{RecipeID: "r4", MealType: "dinner"}}
		if err := repo.ReplaceWeek(ctx, "u1", "2025-W31", bad); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}

func TestReplaceDay(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	week := []Entry{
		{RecipeID: "r1", MealType: "dinner", DayOfWeek: "Monday"},
		{RecipeID: "r2", MealType: "dinner", DayOfWeek: "Tuesday"},
	}
	if err := repo.ReplaceWeek(ctx, "u1", "2025-W29", week); err != nil {
		t.Fatalf("ReplaceWeek failed: %v", err)
	}

	swap := []Entry{{RecipeID: "r9", MealType: "dinner", DayOfWeek: "Monday"}}
	if err := repo.ReplaceDay(ctx, "u1", "2025-W29", "Monday", swap); err != nil {
		t.Fatalf("ReplaceDay failed: %v", err)
	}

	entries, err := repo.GetWeek(ctx, "u1", "2025-W29")
	if err != nil {
		t.Fatalf("GetWeek failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	byDay := make(map[string]string)
	for _, e := range entries {
		byDay[e.DayOfWeek] = e.RecipeID
	}
	if byDay["Monday"] != "r9" {
		t.Errorf("Expected Monday swapped to r9, got %s", byDay["Monday"])
	}
	if byDay["Tuesday"] != "r2" {
		t.Errorf("Expected Tuesday untouched, got %s", byDay["Tuesday"])
	}
}

func TestSetFavorited(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.ReplaceWeek(ctx, "u1", "2025-W29", []Entry{
		{RecipeID: "r1", MealType: "dinner", DayOfWeek: "Monday"},
	}); err != nil {
		t.Fatalf("ReplaceWeek failed: %v", err)
	}
	entries, err := repo.GetWeek(ctx, "u1", "2025-W29")
	if err != nil {
		t.Fatalf("GetWeek failed: %v", err)
	}

	if err := repo.SetFavorited(ctx, "u1", entries[0].ID, true); err != nil {
		t.Fatalf("SetFavorited failed: %v", err)
	}
	entries, err = repo.GetWeek(ctx, "u1", "2025-W29")
	if err != nil {
		t.Fatalf("GetWeek failed: %v", err)
	}
	if !entries[0].IsFavorited {
		t.Error("Expected entry to be favorited")
	}

	if err := repo.SetFavorited(ctx, "u1", 9999, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected not found for unknown id, got %v", err)
	}
}
