package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shoplens/backend/config"
	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/llm"
	"github.com/shoplens/backend/internal/infrastructure/logging"
	"github.com/shoplens/backend/internal/infrastructure/mongo"
	"github.com/shoplens/backend/internal/usecase"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Operate the ShopLens product catalog",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInsertCmd(&verbose))
	root.AddCommand(newSearchCmd(&verbose))
	return root
}

func newInsertCmd(verbose *bool) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Bulk-insert a JSON list of products into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			defer env.close()

			result, err := usecase.NewIngestService(env.catalog).InsertFromFile(env.ctx, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d products\n", result.Message, result.Count)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a JSON file containing a list of products")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSearchCmd(verbose *bool) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one free-text query end to end and print the summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			defer env.close()

			completer, err := llm.New(llm.Config{
				Provider:          env.cfg.LLM.Provider,
				APIKey:            env.cfg.LLM.APIKey,
				Model:             env.cfg.LLM.Model,
				BaseURL:           env.cfg.LLM.BaseURL,
				SystemPrompt:      env.cfg.LLM.SystemPrompt,
				Temperature:       env.cfg.LLM.Temperature,
				MaxTokens:         env.cfg.LLM.MaxTokens,
				Timeout:           env.cfg.LLM.Timeout,
				RequestsPerSecond: env.cfg.LLM.RequestsPerSecond,
			})
			if err != nil {
				return err
			}

			svc := usecase.NewSearchService(env.catalog, completer, usecase.SearchServiceConfig{
				DefaultMode: domain.SearchMode(env.cfg.Search.Mode),
				ResultLimit: env.cfg.Search.ResultLimit,
			})
			result, err := svc.Search(env.ctx, &domain.SearchRequest{
				Query: strings.Join(args, " "),
				Mode:  domain.SearchMode(mode),
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "lookup mode: filter, keywords or keyword (default from config)")
	return cmd
}

type cliEnv struct {
	ctx     context.Context
	cfg     *config.Config
	catalog *mongo.CatalogRepository
}

func (e *cliEnv) close() {
	_ = e.catalog.Close(context.Background())
}

func setup(ctx context.Context, verbose bool) (*cliEnv, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{
		Level:   level,
		Format:  "console",
		Output:  os.Stderr,
		Service: "catalogctl",
	})
	ctx = logger.WithContext(ctx)

	catalog, err := mongo.Connect(ctx, mongo.Config{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout,
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("collection", cfg.Mongo.Collection).Msg("catalog store connected")
	return &cliEnv{ctx: ctx, cfg: cfg, catalog: catalog}, nil
}
