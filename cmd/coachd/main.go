package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadapter "github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/adapters/http"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/adapters/llm/gemini"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/adapters/profiles"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/app"
	"github.com/AmineAitBenmessaoud/AI-Gym-Coach/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	store, err := loadProfiles(cfg.ProfilesPath)
	if err != nil {
		logger.Error("failed to load exercise profiles", "error", err)
		os.Exit(1)
	}

	llmClient := gemini.NewClient(gemini.Config{
		APIKey:          cfg.GeminiAPIKey,
		BaseURL:         cfg.GeminiBaseURL,
		Model:           cfg.GeminiModel,
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Timeout:         cfg.GeminiTimeout,
	}, nil, logger)

	svc := app.NewCoach(llmClient, store, cfg.ConfidenceThreshold, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	handler := httpadapter.NewHandler(svc, cfg.GeminiModel)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "model", cfg.GeminiModel)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func loadProfiles(path string) (*profiles.Store, error) {
	if path != "" {
		return profiles.NewFileStore(path)
	}
	return profiles.NewEmbeddedStore()
}
