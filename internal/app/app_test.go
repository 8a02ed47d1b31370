package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pantry-planner/internal/cart"
	"pantry-planner/internal/customization"
	"pantry-planner/internal/database"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/match"
	"pantry-planner/internal/mealplan"
	"pantry-planner/internal/nutrition"
	"pantry-planner/internal/pantry"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
	"pantry-planner/internal/structurer"
	"pantry-planner/internal/week"
)

type mockTextGen struct {
	response    string
	shouldError bool
}

func (m *mockTextGen) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.shouldError {
		return llm.ContentResponse{}, errors.New("LLM error")
	}
	return llm.ContentResponse{Content: m.response}, nil
}

func testApp(t *testing.T, gen llm.TextGenerator) *App {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "app_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	consolidator := cart.Default()
	return New(Deps{
		MatchConfig:  match.DefaultConfig(),
		Consolidator: consolidator,

		PantryRepo: pantry.NewRepository(db.SQL),
		RecipeRepo: recipe.NewRepository(db.SQL),
		CartRepo:   shopping.NewRepository(db.SQL, consolidator),
		PlanRepo:   mealplan.NewRepository(db.SQL),
		CustomRepo: customization.NewRepository(db.SQL),
		Cursors:    mealplan.NewCursorStore(),
		Structurer: structurer.New(gen),
	})
}

func seedRecipe(t *testing.T, a *App, rec recipe.Recipe) {
	t.Helper()
	if err := a.Recipes().Save(context.Background(), rec); err != nil {
		t.Fatalf("Failed to seed recipe: %v", err)
	}
}

func seedPantry(t *testing.T, a *App, userID string, names ...string) {
	t.Helper()
	items := make([]pantry.Item, len(names))
	for i, n := range names {
		items[i] = pantry.Item{Name: n}
	}
	if err := a.Pantry().BulkInsert(context.Background(), userID, items); err != nil {
		t.Fatalf("Failed to seed pantry: %v", err)
	}
}

func TestMatchRecipeStock(t *testing.T) {
	a := testApp(t, &mockTextGen{})
	ctx := context.Background()

	seedRecipe(t, a, recipe.Recipe{
		ID:          "r1",
		Title:       "Fried Rice",
		Ingredients: "2 cups white rice\nsesame oil\n2 green onions",
	})
	seedPantry(t, a, "u1", "rice", "green onion")

	statuses, err := a.MatchRecipeStock(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("MatchRecipeStock failed: %v", err)
	}
	if len(statuses) != 3 {
		t.Fatalf("Expected one status per ingredient line, got %d", len(statuses))
	}
	if !statuses[0].InStock {
		t.Error("Expected 'white rice' matched by pantry 'rice'")
	}
	if statuses[1].InStock {
		t.Error("Expected 'sesame oil' to be missing")
	}
	if !statuses[2].InStock {
		t.Error("Expected 'green onions' matched by pantry 'green onion'")
	}
}

func TestCoverableRecipes(t *testing.T) {
	a := testApp(t, &mockTextGen{})
	ctx := context.Background()

	seedRecipe(t, a, recipe.Recipe{ID: "r1", Title: "Seasoned Rice", Ingredients: "rice\nsalt\npepper"})
	seedRecipe(t, a, recipe.Recipe{ID: "r2", Title: "Steak", Ingredients: "ribeye steak\nsalt"})
	seedPantry(t, a, "u1", "rice")

	covered, err := a.CoverableRecipes(ctx, "u1")
	if err != nil {
		t.Fatalf("CoverableRecipes failed: %v", err)
	}
	if len(covered) != 1 || covered[0].ID != "r1" {
		t.Fatalf("Expected only the rice recipe covered (salt and pepper are staples), got %+v", covered)
	}
}

func TestRecipesForCustomization(t *testing.T) {
	a := testApp(t, &mockTextGen{})
	ctx := context.Background()

	seedRecipe(t, a, recipe.Recipe{
		ID: "r1", Title: "In Band", Ingredients: "x",
		Nutrients: nutrition.Profile{Calories: "500"},
	})
	seedRecipe(t, a, recipe.Recipe{
		ID: "r2", Title: "Out Of Band", Ingredients: "x",
		Nutrients: nutrition.Profile{Calories: "900"},
	})
	seedRecipe(t, a, recipe.Recipe{
		ID: "r3", Title: "No Facts", Ingredients: "x",
	})

	id, err := a.Customizations().Save(ctx, customization.Customization{
		UserID: "u1", Name: "target",
		Target: nutrition.Profile{Calories: "500"},
	})
	if err != nil {
		t.Fatalf("Save customization failed: %v", err)
	}

	matched, err := a.RecipesForCustomization(ctx, "u1", id)
	if err != nil {
		t.Fatalf("RecipesForCustomization failed: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "r1" {
		t.Fatalf("Expected only the in-band recipe, got %+v", matched)
	}
}

func TestAddMissingToCart(t *testing.T) {
	gen := &mockTextGen{response: `{
		"items": [
			{"item_name": "sesame oil", "quantity": "1", "metric": "bottle", "category": "Pantry", "status": "pending"}
		]
	}`}
	a := testApp(t, gen)
	ctx := context.Background()

	seedRecipe(t, a, recipe.Recipe{
		ID: "r1", Title: "Fried Rice",
		Ingredients: "rice\nsesame oil",
	})
	seedPantry(t, a, "u1", "rice")

	added, err := a.AddMissingToCart(ctx, "u1", "r1")
	if err != nil {
		t.Fatalf("AddMissingToCart failed: %v", err)
	}
	if added != 1 {
		t.Errorf("Expected 1 cart entry added, got %d", added)
	}

	entries, err := a.Cart().ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(entries) != 1 || entries[0].IngredientText != "sesame oil" {
		t.Fatalf("Expected structured 'sesame oil' row, got %+v", entries)
	}

	t.Run("nothing missing adds nothing", func(t *testing.T) {
		seedPantry(t, a, "u1", "sesame oil")
		added, err := a.AddMissingToCart(ctx, "u1", "r1")
		if err != nil {
			t.Fatalf("AddMissingToCart failed: %v", err)
		}
		if added != 0 {
			t.Errorf("Expected 0 added, got %d", added)
		}
	})
}

func TestRefreshDay(t *testing.T) {
	a := testApp(t, &mockTextGen{})
	ctx := context.Background()

	for _, id := range []string{"r1", "r2"} {
		seedRecipe(t, a, recipe.Recipe{
			ID: id, Title: id, Ingredients: "x",
			Nutrients: nutrition.Profile{Calories: "500"},
		})
	}
	customID, err := a.Customizations().Save(ctx, customization.Customization{
		UserID: "u1", Name: "target",
		Target: nutrition.Profile{Calories: "500"},
	})
	if err != nil {
		t.Fatalf("Save customization failed: %v", err)
	}

	// First refresh lands on the second candidate, then wraps.
	got, err := a.RefreshDay(ctx, "u1", customID, "2025-W29", "Monday", "dinner")
	if err != nil {
		t.Fatalf("RefreshDay failed: %v", err)
	}
	if got.ID != "r2" {
		t.Errorf("Expected first refresh to pick r2, got %s", got.ID)
	}

	got, err = a.RefreshDay(ctx, "u1", customID, "2025-W29", "Monday", "dinner")
	if err != nil {
		t.Fatalf("RefreshDay failed: %v", err)
	}
	if got.ID != "r1" {
		t.Errorf("Expected second refresh to wrap to r1, got %s", got.ID)
	}

	entries, err := a.Plans().GetWeek(ctx, "u1", "2025-W29")
	if err != nil {
		t.Fatalf("GetWeek failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected the day to hold one entry, got %d", len(entries))
	}
	if entries[0].RecipeID != "r1" {
		t.Errorf("Expected the plan to hold r1, got %s", entries[0].RecipeID)
	}

	t.Run("no candidates", func(t *testing.T) {
		emptyID, err := a.Customizations().Save(ctx, customization.Customization{
			UserID: "u1", Name: "unreachable",
			Target: nutrition.Profile{Calories: "9000"},
		})
		if err != nil {
			t.Fatalf("Save customization failed: %v", err)
		}
		if _, err := a.RefreshDay(ctx, "u1", emptyID, "2025-W29", "Tuesday", "dinner"); !errors.Is(err, week.ErrNoCandidates) {
			t.Errorf("Expected ErrNoCandidates, got %v", err)
		}
	})
}
