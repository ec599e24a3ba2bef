package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port string

	// Google Gemini configuration
	GoogleAPIKey string
	GeminiModel  string // Optional: overrides the default model for both agents
	UseVertexAI  bool
	GCPProject   string
	GCPLocation  string

	// Supabase configuration (optional: conversation/qualification archive)
	SupabaseURL string
	SupabaseKey string
}

// Business rules for the qualification flow. These mirror the operational
// area of the company: a single target city and four allowed neighborhoods.
const (
	// CidadeAlvo is the only city the company operates in
	CidadeAlvo = "Florianópolis"

	// FallbackMapURL is shown to leads outside the operational area
	FallbackMapURL = "https://www.google.com/maps/place/Florianópolis,+SC"

	// DefaultSimilarityThreshold is the minimum fuzzy score (0-100) for a
	// neighborhood name to be accepted as a match
	DefaultSimilarityThreshold = 80
)

// Validation ranges for extracted business data
const (
	MinLandSizeM2 = 50.0
	MaxLandSizeM2 = 10000.0
	MinPriceBRL   = 50000.0
	MaxPriceBRL   = 50000000.0
)

// AllowedBairros returns the canonical names of the neighborhoods the
// company operates in. Order matters: it is the order shown to leads.
func AllowedBairros() []string {
	return []string{
		"Centro",
		"Itacorubi",
		"Campeche",
		"Jurerê Internacional",
	}
}

// BairroFocus maps each allowed neighborhood to its investment focus,
// used to build the concierge persona prompt.
func BairroFocus() map[string]string {
	return map[string]string{
		"Centro":               "Studios e Comercial",
		"Itacorubi":            "Público universitário e tech",
		"Campeche":             "Rentabilidade de curto prazo/Airbnb",
		"Jurerê Internacional": "Luxo e alto padrão",
	}
}

// Load reads configuration from environment variables
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:         port,
		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		UseVertexAI:  os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") == "true",
		GCPProject:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GCPLocation:  os.Getenv("GOOGLE_CLOUD_LOCATION"),
		SupabaseURL:  os.Getenv("SUPABASE_URL"),
		SupabaseKey:  getEnvWithFallback("SUPABASE_SECRET_KEY", "SUPABASE_KEY"),
	}
}

// getEnvWithFallback returns the value of primary if set, otherwise fallback
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}
