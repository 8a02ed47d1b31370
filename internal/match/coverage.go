package match

// DefaultStaples are ingredients treated as always available regardless of
// pantry contents.
var DefaultStaples = []string{"salt", "pepper", "water", "oil"}

// Config carries the tunable knobs of the matching rule. The defaults were
// carried over from the product as shipped; they are configuration, not
// invariants.
type Config struct {
	Threshold float64
	Staples   []string
}

// DefaultConfig returns the matching configuration as shipped.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, Staples: DefaultStaples}
}

// Covered reports whether every ingredient line matches some pantry item or
// staple. A recipe with no ingredients is trivially covered.
func (c Config) Covered(ingredients, pantryNames []string) bool {
	available := make([]string, 0, len(pantryNames)+len(c.Staples))
	available = append(available, pantryNames...)
	available = append(available, c.Staples...)

	for _, s := range MatchStock(ingredients, available, c.Threshold) {
		if !s.InStock {
			return false
		}
	}
	return true
}

// MatchStock classifies ingredients against the pantry using the configured
// threshold. Staples are not considered here; they only affect coverage.
func (c Config) MatchStock(ingredients, pantryNames []string) []StockStatus {
	return MatchStock(ingredients, pantryNames, c.Threshold)
}
