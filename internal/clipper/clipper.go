// Package clipper imports recipes from the web: fetch a URL, cut the page
// down to text, and structure it with the language model.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pantry-planner/internal/apperr"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/nutrition"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shared"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// ExtractedRecipe represents the data structured by the model.
type ExtractedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Calories     string   `json:"calories"`
	ProteinGrams string   `json:"protein_grams"`
	CarbGrams    string   `json:"carb_grams"`
	FatGrams     string   `json:"fat_grams"`
}

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	textGen    llm.TextGenerator
	recipeRepo *recipe.Repository
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator, recipeRepo *recipe.Repository) *Clipper {
	return &Clipper{
		textGen:    textGen,
		recipeRepo: recipeRepo,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts the recipe, and saves it.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Recipe, shared.AgentMeta, error) {
	meta := shared.AgentMeta{AgentName: "recipe-clipper"}

	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, meta, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["quantity + name", "quantity + name", ...],
  "calories": "per serving, e.g. 450 kcal, or empty if unknown",
  "protein_grams": "e.g. 32g, or empty if unknown",
  "carb_grams": "e.g. 40g, or empty if unknown",
  "fat_grams": "e.g. 12g, or empty if unknown"
}
Do not include any other text in your response.

Page content:
%s
`, content)

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt)
	meta.Latency = time.Since(start)
	meta.Usage = resp.Usage
	if err != nil {
		return nil, meta, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted ExtractedRecipe
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, meta, apperr.Parse("malformed extraction output: %v", err)
	}
	if extracted.Title == "" || len(extracted.Ingredients) == 0 {
		return nil, meta, apperr.Parse("extraction missing title or ingredients")
	}

	rec := recipe.Recipe{
		ID:          uuid.NewString(),
		Title:       extracted.Title,
		Ingredients: strings.Join(extracted.Ingredients, "\n"),
		SourceURL:   url,
		Nutrients: nutrition.Profile{
			Calories:     extracted.Calories,
			ProteinGrams: extracted.ProteinGrams,
			CarbGrams:    extracted.CarbGrams,
			FatGrams:     extracted.FatGrams,
		},
	}

	if err := c.recipeRepo.Save(ctx, rec); err != nil {
		return nil, meta, fmt.Errorf("failed to save imported recipe: %w", err)
	}

	return &rec, meta, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save model tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
