package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pantry-planner/internal/app"
	"pantry-planner/internal/config"
	"pantry-planner/internal/middleware"
)

// NewRouter builds the HTTP surface of the service.
func NewRouter(cfg *config.Config, logger zerolog.Logger, a *app.App) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigin))

	h := &handlers{app: a, dataPath: cfg.DataPath}

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))

		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", h.listPantry)
			r.Post("/", h.addPantry)
			r.Delete("/{id}", h.deletePantry)
			r.Post("/receipt", h.ingestReceipt)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.listRecipes)
			r.Get("/coverable", h.coverableRecipes)
			r.Post("/import", h.importRecipe)
			r.Get("/{id}", h.getRecipe)
			r.Get("/{id}/stock", h.recipeStock)
			r.Post("/{id}/cart", h.addMissingToCart)
		})

		r.Route("/customizations", func(r chi.Router) {
			r.Get("/", h.listCustomizations)
			r.Post("/", h.addCustomization)
			r.Delete("/{id}", h.deleteCustomization)
			r.Get("/{id}/recipes", h.customizationRecipes)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.listCart)
			r.Post("/", h.addCart)
			r.Delete("/{id}", h.deleteCart)
		})

		r.Route("/plans/{weekID}", func(r chi.Router) {
			r.Get("/", h.getWeekPlan)
			r.Put("/", h.replaceWeekPlan)
			r.Post("/{day}/refresh", h.refreshDay)
		})
	})

	return r
}
