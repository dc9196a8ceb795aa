package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr            string
	LogLevel            slog.Level
	CORSOrigins         []string
	BodyLimit           string
	GeminiAPIKey        string
	GeminiModel         string
	GeminiBaseURL       string
	Temperature         float64
	TopP                float64
	TopK                int
	MaxOutputTokens     int
	GeminiTimeout       time.Duration
	ConfidenceThreshold float64
	ProfilesPath        string
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":5000"),
		CORSOrigins:   parseOrigins(envOr("CORS_ORIGINS", "*")),
		BodyLimit:     envOr("BODY_LIMIT", "1M"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiTimeout: 30 * time.Second,
		ProfilesPath:  os.Getenv("EXERCISE_PROFILES"),
	}

	if c.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required")
	}

	var err error
	if c.Temperature, err = floatEnv("GEMINI_TEMPERATURE", 0.7); err != nil {
		return Config{}, err
	}
	if c.TopP, err = floatEnv("GEMINI_TOP_P", 0.95); err != nil {
		return Config{}, err
	}
	if c.TopK, err = intEnv("GEMINI_TOP_K", 40); err != nil {
		return Config{}, err
	}
	if c.MaxOutputTokens, err = intEnv("GEMINI_MAX_TOKENS", 1024); err != nil {
		return Config{}, err
	}
	if c.ConfidenceThreshold, err = floatEnv("CONFIDENCE_THRESHOLD", 0.5); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("GEMINI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GEMINI_TIMEOUT %q: %w", v, err)
		}
		c.GeminiTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func parseOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
