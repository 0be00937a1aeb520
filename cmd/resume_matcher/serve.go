package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing /v1/score, /v1/rank and /v1/rank/stream. Run lookup at /v1/runs/{id} needs a database.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	resolver, err := a.resolver(ctx)
	if err != nil {
		return err
	}
	scorer, err := a.scorer()
	if err != nil {
		return err
	}

	cfg := server.Config{
		Port:            a.cfg.Server.Port,
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
		MaxBatchSize:    a.cfg.Server.MaxBatchSize,
		Batch:           a.batchOptions(),
	}
	opts := []server.Option{server.WithLogger(a.logger)}
	if a.db != nil {
		opts = append(opts, server.WithStore(a.db))
	}

	return server.New(cfg, scorer, resolver, opts...).Start(ctx)
}
