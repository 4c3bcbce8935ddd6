package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_TEMPERATURE",
		"GEMINI_MAX_TOKENS", "GEMINI_FALLBACK_ENABLED", "REDIS_ADDR",
		"QDRANT_HOST", "ANALYTICS_DB_PATH", "LOG_LEVEL", "LOG_TO_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.InDelta(t, 0.7, cfg.GeminiTemperature, 1e-9)
	assert.Equal(t, 500, cfg.GeminiMaxTokens)
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 100, cfg.SessionMessageLimit)
	assert.Equal(t, 6334, cfg.QdrantPort)
	assert.Equal(t, "reply_cache", cfg.QdrantCollection)
	assert.InDelta(t, 0.90, cfg.CacheThreshold, 1e-9)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogToFile)
}

func TestLoad_ClampsGeneratorKnobs(t *testing.T) {
	t.Setenv("GEMINI_TEMPERATURE", "2.4")
	t.Setenv("GEMINI_MAX_TOKENS", "50000")

	cfg := Load()
	assert.InDelta(t, 1.0, cfg.GeminiTemperature, 1e-9)
	assert.Equal(t, 2000, cfg.GeminiMaxTokens)
}

func TestLoad_FallbackDisabled(t *testing.T) {
	t.Setenv("GEMINI_FALLBACK_ENABLED", "false")

	cfg := Load()
	assert.False(t, cfg.FallbackEnabled)
}
