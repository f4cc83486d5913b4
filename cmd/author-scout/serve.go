// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/author-scout/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve author rankings over HTTP",
	Long: `Serve starts an HTTP server exposing:

  GET /api/v1/authors   run a ranking (query: category, from, to, max_results,
                        author_limit, min_h, max_h, keywords, format=json|csv)
  GET /healthz          liveness
  GET /metrics          Prometheus metrics

All requests share one Semantic Scholar rate limiter.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringSlice("category", nil, "default categories when a request names none")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := *app.cfg
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Address = addr
	}

	defaults := defaultParams(&cfg, time.Now())
	defaults.Categories, _ = cmd.Flags().GetStringSlice("category")

	srv := server.New(cfg.Server, newPipeline(&cfg), defaults, app.registry, app.logger)

	ctx, stop := signal.NotifyContext(runContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errc
}
