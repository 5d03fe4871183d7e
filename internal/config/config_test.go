package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 1000, cfg.Ingest.ChunkSize)
	assert.Equal(t, 150, cfg.Ingest.ChunkOverlap)
	assert.Equal(t, 5, cfg.Quiz.ContextTopK)
	assert.Equal(t, 6, cfg.Quiz.SearchTopK)
	assert.Equal(t, 3, cfg.Quiz.RetryFactor)
	assert.Equal(t, 60, cfg.Quiz.DefaultTimeSecs)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Otel.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "500")
	t.Setenv("QUIZ_CONTEXT_TOP_K", "not-a-number")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("GO_ENV", "production")
	t.Setenv("OTEL_ENABLED", "1")

	cfg := Load()

	assert.Equal(t, 500, cfg.Ingest.ChunkSize)
	assert.Equal(t, 5, cfg.Quiz.ContextTopK, "unparsable values fall back to the default")
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 1e-9)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Otel.Enabled)
}
