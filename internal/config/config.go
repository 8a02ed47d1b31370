package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	Host        string
	Port        int
	DBPath      string
	DataPath    string
	LogLevel    string
	LogFile     string
	AllowOrigin []string

	// Boundary services
	GeminiAPIKey string
	GroqAPIKey   string // optional alternate text model
	JWTSecret    string

	// Engine knobs. Defaults mirror the product as shipped; they are kept
	// configurable for tuning without a release.
	MatchThreshold   float64
	NutrientTol      float64
	Staples          []string
	CartStopwords    []string
	RecipeResultCap int
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	threshold, err := strconv.ParseFloat(getenv("MATCH_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MATCH_THRESHOLD: %w", err)
	}

	tolerance, err := strconv.ParseFloat(getenv("NUTRIENT_TOLERANCE", "0.2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NUTRIENT_TOLERANCE: %w", err)
	}

	resultCap, err := strconv.Atoi(getenv("RECIPE_RESULT_CAP", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECIPE_RESULT_CAP: %w", err)
	}

	cfg := &Config{
		Host:           getenv("HOST", "0.0.0.0"),
		Port:           port,
		DBPath:         getenv("DB_PATH", "data/pantry.db"),
		DataPath:       getenv("DATA_PATH", "data"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFile:        getenv("LOG_FILE", "logs/pantry-planner.log"),
		AllowOrigin:    strings.Split(getenv("ALLOW_ORIGINS", "*"), ","),
		GeminiAPIKey:   geminiAPIKey,
		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		JWTSecret:      jwtSecret,
		MatchThreshold: threshold,
		NutrientTol:    tolerance,
		RecipeResultCap: resultCap,
	}

	if staples := os.Getenv("STAPLES"); staples != "" {
		cfg.Staples = splitTrim(staples)
	}
	if stopwords := os.Getenv("CART_STOPWORDS"); stopwords != "" {
		cfg.CartStopwords = splitTrim(stopwords)
	}

	return cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Redacted returns a copy safe for logging.
func (c *Config) Redacted() Config {
	out := *c
	if len(out.GeminiAPIKey) > 8 {
		out.GeminiAPIKey = out.GeminiAPIKey[:8] + "...REDACTED..."
	}
	out.JWTSecret = "...REDACTED..."
	return out
}

