// Package app wires the matching engine to the repositories and boundary
// services. Handlers call into App; nothing here touches the transport.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"pantry-planner/internal/cart"
	"pantry-planner/internal/clipper"
	"pantry-planner/internal/customization"
	"pantry-planner/internal/match"
	"pantry-planner/internal/mealplan"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/nutrition"
	"pantry-planner/internal/pantry"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/scanner"
	"pantry-planner/internal/shared"
	"pantry-planner/internal/shopping"
	"pantry-planner/internal/storage"
	"pantry-planner/internal/structurer"
)

// App holds the application's dependencies.
type App struct {
	matchCfg     match.Config
	tolerance    float64
	resultCap    int
	consolidator *cart.Consolidator

	pantryRepo  *pantry.Repository
	recipeRepo  *recipe.Repository
	cartRepo    *shopping.Repository
	planRepo    *mealplan.Repository
	customRepo  *customization.Repository
	cursors     *mealplan.CursorStore
	metrics     *metrics.Store
	receipts    *storage.ReceiptStore
	scanner     *scanner.Scanner
	structurer  *structurer.Structurer
	clipper     *clipper.Clipper
}

// Deps bundles the constructor arguments of App.
type Deps struct {
	MatchConfig  match.Config
	Tolerance    float64
	ResultCap    int
	Consolidator *cart.Consolidator

	PantryRepo *pantry.Repository
	RecipeRepo *recipe.Repository
	CartRepo   *shopping.Repository
	PlanRepo   *mealplan.Repository
	CustomRepo *customization.Repository
	Cursors    *mealplan.CursorStore
	Metrics    *metrics.Store
	Receipts   *storage.ReceiptStore
	Scanner    *scanner.Scanner
	Structurer *structurer.Structurer
	Clipper    *clipper.Clipper
}

// New creates and initializes a new App instance.
func New(d Deps) *App {
	if d.Tolerance == 0 {
		d.Tolerance = nutrition.DefaultTolerance
	}
	if d.ResultCap == 0 {
		d.ResultCap = customization.DefaultResultCap
	}
	return &App{
		matchCfg:     d.MatchConfig,
		tolerance:    d.Tolerance,
		resultCap:    d.ResultCap,
		consolidator: d.Consolidator,
		pantryRepo:   d.PantryRepo,
		recipeRepo:   d.RecipeRepo,
		cartRepo:     d.CartRepo,
		planRepo:     d.PlanRepo,
		customRepo:   d.CustomRepo,
		cursors:      d.Cursors,
		metrics:      d.Metrics,
		receipts:     d.Receipts,
		scanner:      d.Scanner,
		structurer:   d.Structurer,
		clipper:      d.Clipper,
	}
}

// MatchRecipeStock classifies a recipe's ingredients against the user's
// pantry, one result per ingredient line in recipe order.
func (a *App) MatchRecipeStock(ctx context.Context, userID, recipeID string) ([]match.StockStatus, error) {
	rec, err := a.recipeRepo.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	names, err := a.pantryRepo.Names(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.matchCfg.MatchStock(rec.IngredientLines(), names), nil
}

// CoverableRecipes returns the recipes fully makeable right now from the
// user's pantry plus staples, preserving repository order.
func (a *App) CoverableRecipes(ctx context.Context, userID string) ([]recipe.Recipe, error) {
	names, err := a.pantryRepo.Names(ctx, userID)
	if err != nil {
		return nil, err
	}
	recipes, err := a.recipeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var covered []recipe.Recipe
	for _, rec := range recipes {
		if a.matchCfg.Covered(rec.IngredientLines(), names) {
			covered = append(covered, rec)
		}
	}
	return covered, nil
}

// RecipesForCustomization returns the recipes whose nutrient facts fall
// inside the customization's tolerance band, capped at the configured
// result count. Recipes with unparseable facts are excluded, not fatal.
func (a *App) RecipesForCustomization(ctx context.Context, userID string, customizationID int64) ([]recipe.Recipe, error) {
	custom, err := a.customRepo.Get(ctx, userID, customizationID)
	if err != nil {
		return nil, err
	}
	tolerance := custom.Tolerance
	if tolerance == 0 {
		tolerance = a.tolerance
	}

	recipes, err := a.recipeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []recipe.Recipe
	for _, rec := range recipes {
		if nutrition.WithinTarget(rec.Nutrients, custom.Target, tolerance) {
			matched = append(matched, rec)
			if len(matched) >= a.resultCap {
				break
			}
		}
	}
	return matched, nil
}

// AddMissingToCart finds the recipe ingredients not covered by the pantry,
// structures them, and appends them to the user's cart with consolidation.
// It returns the number of entries actually added.
func (a *App) AddMissingToCart(ctx context.Context, userID, recipeID string) (int, error) {
	statuses, err := a.MatchRecipeStock(ctx, userID, recipeID)
	if err != nil {
		return 0, err
	}
	missing := match.Missing(statuses)
	if len(missing) == 0 {
		return 0, nil
	}

	rows, meta, err := a.structurer.Structure(ctx, missing)
	a.recordMeta(ctx, meta)
	if err != nil {
		return 0, err
	}

	entries := make([]shopping.CartEntry, len(rows))
	for i, row := range rows {
		entries[i] = shopping.CartEntry{
			IngredientText: row.ItemName,
			Quantity:       row.Quantity,
			Metric:         row.Metric,
			Category:       row.Category,
		}
	}
	return a.cartRepo.Add(ctx, userID, entries)
}

// IngestReceipt archives the receipt text, structures it, and bulk-inserts
// the readable items into the pantry.
func (a *App) IngestReceipt(ctx context.Context, userID, receiptText string) ([]pantry.Item, error) {
	if _, err := a.receipts.Save(userID, receiptText); err != nil {
		// Archival is best effort; the scan itself must still run.
		log.Warn().Err(err).Msg("failed to archive receipt")
	}

	items, meta, err := a.scanner.Scan(ctx, receiptText)
	a.recordMeta(ctx, meta)
	if err != nil {
		return nil, err
	}

	pantryItems := make([]pantry.Item, len(items))
	for i, it := range items {
		pantryItems[i] = pantry.Item{
			UserID:         userID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			ExpirationDate: it.ExpirationDate,
			Category:       it.Category,
		}
	}
	if err := a.pantryRepo.BulkInsert(ctx, userID, pantryItems); err != nil {
		return nil, err
	}
	return pantryItems, nil
}

// RefreshDay advances the rotation cursor for the given day and replaces
// that day's entry with the next candidate from the customization. It
// returns the recipe now applied.
func (a *App) RefreshDay(ctx context.Context, userID string, customizationID int64, weekID, dayOfWeek, mealType string) (*recipe.Recipe, error) {
	candidates, err := a.RecipesForCustomization(ctx, userID, customizationID)
	if err != nil {
		return nil, err
	}

	cursor, err := a.cursors.Advance(userID, weekID, dayOfWeek, len(candidates))
	if err != nil {
		return nil, err
	}
	chosen := candidates[cursor]

	entry := mealplan.Entry{
		RecipeID:  chosen.ID,
		MealType:  mealType,
		DayOfWeek: dayOfWeek,
		WeekID:    weekID,
	}
	if err := a.planRepo.ReplaceDay(ctx, userID, weekID, dayOfWeek, []mealplan.Entry{entry}); err != nil {
		return nil, err
	}
	return &chosen, nil
}

// ImportRecipe clips a recipe from a URL into the store.
func (a *App) ImportRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	rec, meta, err := a.clipper.ClipURL(ctx, url)
	a.recordMeta(ctx, meta)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a *App) recordMeta(ctx context.Context, meta shared.AgentMeta) {
	if a.metrics == nil {
		return
	}
	if err := a.metrics.RecordMeta(ctx, meta); err != nil {
		log.Warn().Err(err).Str("agent", meta.AgentName).Msg("failed to record metrics")
	}
}

// Pantry exposes the pantry repository for handlers.
func (a *App) Pantry() *pantry.Repository { return a.pantryRepo }

// Recipes exposes the recipe repository for handlers.
func (a *App) Recipes() *recipe.Repository { return a.recipeRepo }

// Cart exposes the shopping repository for handlers.
func (a *App) Cart() *shopping.Repository { return a.cartRepo }

// Plans exposes the meal plan repository for handlers.
func (a *App) Plans() *mealplan.Repository { return a.planRepo }

// Customizations exposes the customization repository for handlers.
func (a *App) Customizations() *customization.Repository { return a.customRepo }
