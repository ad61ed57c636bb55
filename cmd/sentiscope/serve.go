package main

import (
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/app"
	"github.com/spacesedan/sentiscope/internal/clients"
	"github.com/spacesedan/sentiscope/internal/loader"
	"github.com/spacesedan/sentiscope/internal/pipeline"
	"github.com/spacesedan/sentiscope/internal/sentiment"
	"github.com/spacesedan/sentiscope/internal/session"
	"github.com/spacesedan/sentiscope/internal/viz"
	"github.com/spacesedan/sentiscope/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard",
		Example: `  # Serve on the default address
  sentiscope serve

  # Serve on a custom port with debug logs
  sentiscope serve --addr :9000 --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd)
			if cfg == nil {
				return errors.New("configuration not loaded")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return newServer(cfg).Serve(ctx)
		},
	}
}

func newServer(cfg *config.Config) *web.Server {
	fetcher := clients.NewSheetsClient(clients.SheetsClientConfig{
		Timeout:        cfg.Loader.Timeout,
		MaxRetries:     cfg.Loader.MaxRetries,
		InitialBackoff: cfg.Loader.InitialBackoff,
		MaxBytes:       cfg.Loader.MaxBytes,
	})

	analyzer := pipeline.NewAnalyzer(
		loader.New(fetcher),
		sentiment.NewVader(cfg.Analysis.StripMarkup),
		cfg.Analysis.PreviewRows,
	)
	renderer := viz.NewRenderer(viz.SVGCharts{}, viz.Options{
		MaxBins:    cfg.Viz.MaxBins,
		MaxBuckets: cfg.Viz.MaxBuckets,
	})

	return web.NewServer(web.Config{
		Addr:          cfg.Server.Addr,
		SessionSecret: cfg.Server.SessionSecret,
		SweepInterval: cfg.Session.SweepInterval,
		App:           app.New(analyzer, renderer, app.WithColumnHint(cfg.Analysis.ColumnHint)),
		Sessions:      session.NewManager(cfg.Session.IdleTimeout),
		Logger:        slog.Default(),
	})
}
