package clipper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/database"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/recipe"
)

type MockTextGenerator struct {
	Response    string
	ShouldError bool
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if m.ShouldError {
		return llm.ContentResponse{}, fmt.Errorf("mock ai error")
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

func testRepo(t *testing.T) *recipe.Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "clipper_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return recipe.NewRepository(db.SQL)
}

func recipePage() string {
	return `
	<html>
		<head><script>alert('bad');</script></head>
		<body>
			<h1>Chicken Fried Rice</h1>
			<div class="ads">Buy stuff!</div>
			<ul><li>2 chicken breasts</li><li>1 cup rice</li></ul>
			<script>more_bad_stuff()</script>
			<footer>Copyright 2024</footer>
		</body>
	</html>`
}

func TestFetchAndCleanHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(recipePage()))
	}))
	defer ts.Close()

	c := NewClipper(&MockTextGenerator{}, testRepo(t))

	cleanText, err := c.fetchAndCleanHTML(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(cleanText, "alert('bad')") {
		t.Error("Failed to remove <script> tags")
	}
	if strings.Contains(cleanText, "Buy stuff!") {
		t.Error("Failed to remove .ads class")
	}
	if strings.Contains(cleanText, "Copyright 2024") {
		t.Error("Failed to remove <footer>")
	}
	if !strings.Contains(cleanText, "2 chicken breasts") {
		t.Error("Expected ingredient text to survive cleaning")
	}
}

func TestClipURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(recipePage()))
	}))
	defer ts.Close()

	t.Run("Success", func(t *testing.T) {
		repo := testRepo(t)
		c := NewClipper(&MockTextGenerator{Response: `{
			"title": "Chicken Fried Rice",
			"ingredients": ["2 chicken breasts", "1 cup rice"],
			"calories": "520 kcal",
			"protein_grams": "38g",
			"carb_grams": "55g",
			"fat_grams": "14g"
		}`}, repo)

		rec, _, err := c.ClipURL(context.Background(), ts.URL)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Title != "Chicken Fried Rice" {
			t.Errorf("Expected title 'Chicken Fried Rice', got '%s'", rec.Title)
		}
		if len(rec.IngredientLines()) != 2 {
			t.Errorf("Expected 2 ingredient lines, got %d", len(rec.IngredientLines()))
		}

		saved, err := repo.Get(context.Background(), rec.ID)
		if err != nil {
			t.Fatalf("Expected imported recipe to be saved: %v", err)
		}
		if saved.Nutrients.Calories != "520 kcal" {
			t.Errorf("Expected calories '520 kcal', got '%s'", saved.Nutrients.Calories)
		}
	})

	t.Run("MalformedExtraction", func(t *testing.T) {
		c := NewClipper(&MockTextGenerator{Response: "not json"}, testRepo(t))
		_, _, err := c.ClipURL(context.Background(), ts.URL)
		if !errors.Is(err, apperr.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("MissingTitle", func(t *testing.T) {
		c := NewClipper(&MockTextGenerator{Response: `{"title": "", "ingredients": ["x"]}`}, testRepo(t))
		_, _, err := c.ClipURL(context.Background(), ts.URL)
		if !errors.Is(err, apperr.ErrParse) {
			t.Errorf("Expected ErrParse, got %v", err)
		}
	})

	t.Run("ModelError", func(t *testing.T) {
		c := NewClipper(&MockTextGenerator{ShouldError: true}, testRepo(t))
		_, _, err := c.ClipURL(context.Background(), ts.URL)
		if err == nil {
			t.Fatal("Expected an error from the model, got nil")
		}
	})
}
