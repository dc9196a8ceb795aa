package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiBaseURL)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 0.95, cfg.TopP)
	assert.Equal(t, 40, cfg.TopK)
	assert.Equal(t, 1024, cfg.MaxOutputTokens)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 0.5, cfg.ConfidenceThreshold)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "1M", cfg.BodyLimit)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.ProfilesPath)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("GEMINI_TEMPERATURE", "0.2")
	t.Setenv("GEMINI_TOP_K", "10")
	t.Setenv("GEMINI_TIMEOUT", "45s")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.7")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, 45*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 0.7, cfg.ConfidenceThreshold)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_BadValues(t *testing.T) {
	cases := map[string]string{
		"GEMINI_TEMPERATURE":   "hot",
		"GEMINI_TOP_K":         "many",
		"GEMINI_TIMEOUT":       "soon",
		"CONFIDENCE_THRESHOLD": "high",
		"LOG_LEVEL":            "loud",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "test-key")
			t.Setenv(key, value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
