package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

// app holds what every subcommand needs, built from config.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *db.DB
	closers []func()
}

// newApp loads config and connects the optional database.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: log}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			a.close()
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			a.close()
			return nil, err
		}
		a.db = database
		a.closers = append(a.closers, database.Close)
	}
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) scorer() (*matching.Scorer, error) {
	weights, err := a.cfg.MatchWeights()
	if err != nil {
		return nil, err
	}
	return matching.NewScorer(weights,
		matching.WithLogger(a.logger),
		matching.WithMaxTextLength(a.cfg.Scoring.MaxTextLength),
	)
}

// resolver wires URL fetching, the database and bucket readers per config.
func (a *app) resolver(ctx context.Context) (*ingestion.Resolver, error) {
	opts := []ingestion.Option{
		ingestion.WithLogger(a.logger),
		ingestion.WithFetcher(fetch.New(a.cfg.FetchOptions(), fetch.WithLogger(a.logger))),
	}
	if a.db != nil {
		opts = append(opts, ingestion.WithStore(a.db))
	}
	if a.cfg.Storage.S3 {
		reader, err := ingestion.NewS3Reader(ctx, a.cfg.Storage.AWSProfile, a.cfg.Storage.AWSRegion)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ingestion.WithObjectReader(ingestion.SourceS3, reader))
	}
	if a.cfg.Storage.GCS {
		reader, err := ingestion.NewGCSReader(ctx)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = reader.Close() })
		opts = append(opts, ingestion.WithObjectReader(ingestion.SourceGCS, reader))
	}
	return ingestion.NewResolver(opts...), nil
}

func (a *app) batchOptions() batch.Options {
	opts := a.cfg.BatchOptions()
	opts.Logger = a.logger
	return opts
}

// runStore avoids handing a nil *db.DB to an interface.
func (a *app) runStore() batch.RunStore {
	if a.db == nil {
		return nil
	}
	return a.db
}

// checkSchema logs, but does not fail on, output that drifts from its schema.
func (a *app) checkSchema(name string, doc any) {
	v, err := schemas.Default()
	if err != nil {
		a.logger.Warn("schemas unavailable", zap.Error(err))
		return
	}
	if err := v.Validate(name, doc); err != nil {
		a.logger.Warn("output does not match schema", zap.String("schema", name), zap.Error(err))
	}
}

// writeJSON writes indented JSON to path, or to stdout when path is empty.
func writeJSON(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
