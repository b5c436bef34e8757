package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shoplens/backend/config"
	httpDelivery "github.com/shoplens/backend/internal/delivery/http"
	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/llm"
	"github.com/shoplens/backend/internal/infrastructure/logging"
	"github.com/shoplens/backend/internal/infrastructure/mongo"
	"github.com/shoplens/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	format := cfg.Log.Format
	if cfg.Server.Environment == "development" {
		format = "console"
	}
	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  format,
		Service: "shoplens-backend",
	})

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("provider", cfg.LLM.Provider).
		Str("mode", cfg.Search.Mode).
		Int("result_limit", cfg.Search.ResultLimit).
		Msg("Starting ShopLens Backend v1.0.0")

	ctx := context.Background()

	catalog, err := mongo.Connect(ctx, mongo.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to catalog store")
	}
	defer catalog.Close(context.Background())
	logger.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("catalog store connected")

	completer, err := newCompleter(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure model backend")
	}

	searchService := usecase.NewSearchService(catalog, completer, usecase.SearchServiceConfig{
		DefaultMode: domain.SearchMode(cfg.Search.Mode),
		ResultLimit: cfg.Search.ResultLimit,
	})
	ingestService := usecase.NewIngestService(catalog)

	handler := httpDelivery.NewHandler(searchService, ingestService)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("Server listening")

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

func newCompleter(cfg *config.Config) (domain.Completer, error) {
	return llm.New(llm.Config{
		Provider:          cfg.LLM.Provider,
		APIKey:            cfg.LLM.APIKey,
		Model:             cfg.LLM.Model,
		BaseURL:           cfg.LLM.BaseURL,
		SystemPrompt:      cfg.LLM.SystemPrompt,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
		Timeout:           cfg.LLM.Timeout,
		RequestsPerSecond: cfg.LLM.RequestsPerSecond,
	})
}
