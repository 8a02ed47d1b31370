package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pantry-planner/internal/app"
	"pantry-planner/internal/apperr"
	"pantry-planner/internal/customization"
	"pantry-planner/internal/mealplan"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/middleware"
	"pantry-planner/internal/nutrition"
	"pantry-planner/internal/pantry"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
	"pantry-planner/internal/week"
)

// resolveWeekID accepts the literal identifier or the "current" alias.
func resolveWeekID(raw string) string {
	if raw == "current" {
		return week.ID(time.Now())
	}
	return raw
}

type handlers struct {
	app      *app.App
	dataPath string
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sys":    metrics.GetSysHealth(h.dataPath),
	})
}

// --- pantry ---

func (h *handlers) listPantry(w http.ResponseWriter, r *http.Request) {
	items, err := h.app.Pantry().ListByUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []pantry.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handlers) addPantry(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	var body struct {
		Items []pantry.Item `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	if len(body.Items) == 0 {
		writeError(w, apperr.Validation("no pantry items given"))
		return
	}

	if err := h.app.Pantry().BulkInsert(r.Context(), userID, body.Items); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"added": len(body.Items)})
}

func (h *handlers) deletePantry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperr.Validation("invalid pantry item id"))
		return
	}
	if err := h.app.Pantry().Delete(r.Context(), middleware.GetUserID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *handlers) ingestReceipt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReceiptText string `json:"receipt_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body: %v", err))
		return
	}

	items, err := h.app.IngestReceipt(r.Context(), middleware.GetUserID(r), body.ReceiptText)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, items)
}

// --- recipes ---

func (h *handlers) listRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.app.Recipes().List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *handlers) getRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.app.Recipes().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handlers) recipeStock(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.app.MatchRecipeStock(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (h *handlers) coverableRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.app.CoverableRecipes(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *handlers) importRecipe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		writeError(w, apperr.Validation("a url is required"))
		return
	}

	rec, err := h.app.ImportRecipe(r.Context(), body.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *handlers) addMissingToCart(w http.ResponseWriter, r *http.Request) {
	added, err := h.app.AddMissingToCart(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"added": added})
}

// --- customizations ---

func (h *handlers) listCustomizations(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Customizations().ListByUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []customization.Customization{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) addCustomization(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string            `json:"name"`
		Target    nutrition.Profile `json:"target"`
		Tolerance float64           `json:"tolerance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body: %v", err))
		return
	}

	id, err := h.app.Customizations().Save(r.Context(), customization.Customization{
		UserID:    middleware.GetUserID(r),
		Name:      body.Name,
		Target:    body.Target,
		Tolerance: body.Tolerance,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *handlers) deleteCustomization(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperr.Validation("invalid customization id"))
		return
	}
	if err := h.app.Customizations().Delete(r.Context(), middleware.GetUserID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *handlers) customizationRecipes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperr.Validation("invalid customization id"))
		return
	}
	recipes, err := h.app.RecipesForCustomization(r.Context(), middleware.GetUserID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

// --- cart ---

func (h *handlers) listCart(w http.ResponseWriter, r *http.Request) {
	entries, err := h.app.Cart().ListByUser(r.Context(), middleware.GetUserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []shopping.CartEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handlers) addCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Entries []string `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body: %v", err))
		return
	}

	entries := make([]shopping.CartEntry, len(body.Entries))
	for i, text := range body.Entries {
		entries[i] = shopping.CartEntry{IngredientText: text}
	}
	added, err := h.app.Cart().Add(r.Context(), middleware.GetUserID(r), entries)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"added": added})
}

func (h *handlers) deleteCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperr.Validation("invalid cart entry id"))
		return
	}
	if err := h.app.Cart().Delete(r.Context(), middleware.GetUserID(r), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- plans ---

func (h *handlers) getWeekPlan(w http.ResponseWriter, r *http.Request) {
	entries, err := h.app.Plans().GetWeek(r.Context(), middleware.GetUserID(r), resolveWeekID(chi.URLParam(r, "weekID")))
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []mealplan.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handlers) replaceWeekPlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Entries []mealplan.Entry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body: %v", err))
		return
	}

	userID := middleware.GetUserID(r)
	weekID := resolveWeekID(chi.URLParam(r, "weekID"))
	if err := h.app.Plans().ReplaceWeek(r.Context(), userID, weekID, body.Entries); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"saved": len(body.Entries)})
}

func (h *handlers) refreshDay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomizationID int64  `json:"customization_id"`
		MealType        string `json:"meal_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body: %v", err))
		return
	}
	if body.MealType == "" {
		body.MealType = "dinner"
	}

	weekID := resolveWeekID(chi.URLParam(r, "weekID"))
	day := chi.URLParam(r, "day")

	// Rejects malformed week identifiers and unknown day names before any
	// state changes.
	date, err := week.DateFor(weekID, day)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.app.RefreshDay(
		r.Context(),
		middleware.GetUserID(r),
		body.CustomizationID,
		weekID,
		day,
		body.MealType,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recipe": rec,
		"date":   date.Format("2006-01-02"),
	})
}
