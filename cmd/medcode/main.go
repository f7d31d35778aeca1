// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/medcode"
	"github.com/poiesic/medcode/ai"
	"github.com/poiesic/medcode/config"
	"github.com/poiesic/medcode/hierarchy"
	"github.com/poiesic/medcode/ingestion"
	"github.com/poiesic/medcode/server"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "medcode",
		Usage: "Hierarchy-aware diagnostic code suggestion engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML config file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load a JSONL code dataset, embed it, and store the catalog",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"i"},
						Usage:   "Path to JSONL dataset file",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to catalog database directory",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of entries to embed per API call",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve code suggestions over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to catalog database directory",
					},
					&cli.BoolFlag{
						Name:  "ingest",
						Usage: "Ingest the configured dataset before serving",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Suggest codes for a clinical phrase",
				ArgsUsage: "<text>",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to catalog database directory",
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of suggestions to return",
					},
				},
			},
			{
				Name:      "detect",
				Usage:     "Detect the hierarchy chapter for a text",
				ArgsUsage: "<text>",
				Action:    detectCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the TOML config named by --config (or defaults) and
// applies command-line overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.Storage.Path = c.String("db")
	}
	if c.IsSet("dataset") {
		cfg.Ingestion.DatasetPath = c.String("dataset")
	}
	if c.IsSet("batch-size") {
		cfg.Ingestion.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("pool-size") {
		cfg.Ingestion.PoolSize = c.Int("pool-size")
	}
	if c.IsSet("top-k") {
		cfg.Retrieval.TopK = c.Int("top-k")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newAssistant(cfg *config.Config) (*medcode.Assistant, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
		ai.WithExtractorHost(cfg.AI.ExtractorHost),
		ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
		ai.WithExtractorModel(cfg.AI.ExtractorModel),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []medcode.AssistantOption{
		medcode.WithAIConfig(aiConfig),
		medcode.WithBoostFactor(cfg.Retrieval.BoostFactor),
	}
	if cfg.Storage.InMemory {
		opts = append(opts, medcode.WithInMemoryStorage())
	}

	return medcode.NewAssistant(cfg.Storage.Path, opts...)
}

func runIngestion(ctx context.Context, assistant *medcode.Assistant, cfg *config.Config) (*ingestion.Report, error) {
	loaderOpts := []ingestion.Option{
		ingestion.WithBatchSize(cfg.Ingestion.BatchSize),
	}
	if cfg.Ingestion.PoolSize > 0 {
		loaderOpts = append(loaderOpts, ingestion.WithPoolSize(cfg.Ingestion.PoolSize))
	}

	loader, err := assistant.NewLoader(loaderOpts...)
	if err != nil {
		return nil, err
	}
	defer loader.Release()

	return loader.Ingest(ctx, cfg.Ingestion.DatasetPath, cfg.AI.EmbeddingModel)
}

func ingestCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assistant, err := newAssistant(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	report, err := runIngestion(c.Context, assistant, cfg)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if report.Skipped {
		fmt.Fprintf(os.Stderr, "Dataset unchanged (%s), catalog kept: %d codes\n",
			report.Fingerprint, report.CodeCount)
		return nil
	}

	fmt.Fprintf(os.Stderr, "Ingested %d codes (dimension %d, fingerprint %s)\n",
		report.CodeCount, report.Dimension, report.Fingerprint)
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assistant, err := newAssistant(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx := c.Context

	if c.Bool("ingest") {
		report, err := runIngestion(ctx, assistant, cfg)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
		slog.Info("catalog ready", "codes", report.CodeCount, "skipped", report.Skipped)
	}

	if err := assistant.LoadIndex(ctx); err != nil {
		return fmt.Errorf("failed to load vector index: %w", err)
	}

	pipeline, err := assistant.NewPipeline()
	if err != nil {
		return err
	}

	aggregator, err := assistant.NewAggregator()
	if err != nil {
		return err
	}
	defer aggregator.Release()

	srv, err := server.New(server.Deps{
		Pipeline:   pipeline,
		Aggregator: aggregator,
		Extractor:  assistant.Provider().EntityExtractor(),
		Detector:   assistant.Detector(),
		Repository: assistant.CodeRepository(),
		Index:      assistant.Index(),
	},
		server.WithTopK(cfg.Retrieval.TopK),
		server.WithPerQueryK(cfg.Retrieval.PerQueryK),
		server.WithMinConfidence(cfg.Retrieval.MinConfidence),
		server.WithExtractionEnabled(cfg.AI.ExtractionEnabled),
	)
	if err != nil {
		return err
	}

	slog.Info("starting server", "addr", cfg.Addr())
	return srv.SetupRouter().Run(cfg.Addr())
}

func suggestCommand(c *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("text argument is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assistant, err := newAssistant(cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx := c.Context
	if err := assistant.LoadIndex(ctx); err != nil {
		return fmt.Errorf("failed to load vector index: %w", err)
	}

	pipeline, err := assistant.NewPipeline()
	if err != nil {
		return err
	}

	candidates, err := pipeline.Retrieve(ctx, text, cfg.Retrieval.TopK)
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}

	for i, candidate := range candidates {
		fmt.Printf("%d. %s  %.2f  %s\n   %s\n",
			i+1, candidate.Code.Id, candidate.Confidence,
			candidate.Code.Description, candidate.Explanation)
	}
	return nil
}

func detectCommand(c *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("text argument is required")
	}

	chapter, detected := hierarchy.NewDetector().Detect(text)
	if !detected {
		fmt.Println("No chapter detected.")
		return nil
	}

	fmt.Println(chapter)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
