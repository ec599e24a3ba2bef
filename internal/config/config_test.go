package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.UseVertexAI)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "true")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SECRET_KEY", "secret")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test-key", cfg.GoogleAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.True(t, cfg.UseVertexAI)
	assert.Equal(t, "https://example.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "secret", cfg.SupabaseKey)
}

func TestLoad_SupabaseKeyFallback(t *testing.T) {
	t.Setenv("SUPABASE_SECRET_KEY", "")
	t.Setenv("SUPABASE_KEY", "legacy-key")

	cfg := Load()
	assert.Equal(t, "legacy-key", cfg.SupabaseKey)
}

func TestGetEnvWithFallback(t *testing.T) {
	t.Setenv("PRIMARY_VAR", "primary-value")
	t.Setenv("FALLBACK_VAR", "fallback-value")

	assert.Equal(t, "primary-value", getEnvWithFallback("PRIMARY_VAR", "FALLBACK_VAR"))
	assert.Equal(t, "fallback-value", getEnvWithFallback("UNSET_VAR", "FALLBACK_VAR"))
	assert.Equal(t, "", getEnvWithFallback("UNSET_VAR", "ALSO_UNSET_VAR"))
}

func TestAllowedBairros(t *testing.T) {
	bairros := AllowedBairros()

	require.Len(t, bairros, 4)
	assert.Equal(t, []string{"Centro", "Itacorubi", "Campeche", "Jurerê Internacional"}, bairros)
}

func TestBairroFocus_CoversAllBairros(t *testing.T) {
	focus := BairroFocus()

	for _, bairro := range AllowedBairros() {
		assert.Contains(t, focus, bairro)
		assert.NotEmpty(t, focus[bairro])
	}
}

func TestValidationRanges(t *testing.T) {
	assert.Less(t, MinLandSizeM2, MaxLandSizeM2)
	assert.Less(t, MinPriceBRL, MaxPriceBRL)
	assert.Positive(t, DefaultSimilarityThreshold)
}
