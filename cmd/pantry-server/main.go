package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pantry-planner/internal/app"
	"pantry-planner/internal/cart"
	"pantry-planner/internal/clipper"
	"pantry-planner/internal/config"
	"pantry-planner/internal/customization"
	"pantry-planner/internal/database"
	"pantry-planner/internal/llm"
	"pantry-planner/internal/match"
	"pantry-planner/internal/mealplan"
	"pantry-planner/internal/metrics"
	"pantry-planner/internal/pantry"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/scanner"
	"pantry-planner/internal/server"
	"pantry-planner/internal/shopping"
	"pantry-planner/internal/storage"
	"pantry-planner/internal/structurer"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		os.Stderr.WriteString("configuration: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	textGen, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Gemini client")
	}
	defer func() {
		if c, ok := textGen.(llm.Closer); ok {
			_ = c.Close()
		}
	}()

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	receipts, err := storage.NewReceiptStore(cfg.DataPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize receipt store")
	}

	matchCfg := match.DefaultConfig()
	matchCfg.Threshold = cfg.MatchThreshold
	if len(cfg.Staples) > 0 {
		matchCfg.Staples = cfg.Staples
	}

	consolidator := cart.Default()
	if len(cfg.CartStopwords) > 0 {
		consolidator = cart.New(cfg.CartStopwords)
	}

	// Receipt scanning and ingredient structuring can run on Groq when a
	// key is configured; recipe clipping stays on Gemini.
	scanGen := textGen
	if cfg.GroqAPIKey != "" {
		scanGen = llm.NewGroqClient(cfg)
	}

	recipeRepo := recipe.NewRepository(db.SQL)

	application := app.New(app.Deps{
		MatchConfig:  matchCfg,
		Tolerance:    cfg.NutrientTol,
		ResultCap:    cfg.RecipeResultCap,
		Consolidator: consolidator,

		PantryRepo: pantry.NewRepository(db.SQL),
		RecipeRepo: recipeRepo,
		CartRepo:   shopping.NewRepository(db.SQL, consolidator),
		PlanRepo:   mealplan.NewRepository(db.SQL),
		CustomRepo: customization.NewRepository(db.SQL),
		Cursors:    mealplan.NewCursorStore(),
		Metrics:    metrics.NewStore(db.SQL),
		Receipts:   receipts,
		Scanner:    scanner.New(scanGen),
		Structurer: structurer.New(scanGen),
		Clipper:    clipper.NewClipper(textGen, recipeRepo),
	})

	r := server.NewRouter(cfg, logger, application)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("bye")
}
