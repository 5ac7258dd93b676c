package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/commitstreak/core"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/web"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd runs the HTTP service.
var serveCmd = &cobra.Command{
	Use:   "serve [repo-path...]",
	Short: "Serve the challenge report over HTTP",
	Long: `Start an HTTP service that evaluates the challenge on every request.

Routes:
  GET /               HTML report (add ?json for the JSON document)
  GET /api/v1/stats   JSON report
  GET /metrics        Prometheus gauges for the current report
  GET /healthz        Liveness probe

Query parameters required, start and end override the challenge per request.
With --debug, demo and demo_result select a demo scenario.

When a config file is in use it is watched and reloaded on change.

Examples:
  streak serve --addr 0.0.0.0:5000
  curl 'localhost:5000/api/v1/stats?required=100&start=2026-01-01'`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		ctx, cancel := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		handler := web.NewHandler(cfg, func(c *contract.Config) (contract.CommitCountProvider, error) {
			return core.NewProvider(c, cacheManager)
		}, nil)

		if path := viper.ConfigFileUsed(); path != "" {
			go func() {
				load := func() (*contract.Config, error) {
					next, _, err := resolveConfig(ctx, args)
					return next, err
				}
				if err := web.WatchConfig(ctx, path, load, handler.SetConfig); err != nil {
					slog.Error("config watcher stopped", "err", err)
				}
			}()
		}

		slog.Info("streak starting", "addr", cfg.ServeAddr, "source", cfg.Source, "cache_backend", cfg.CacheBackend)
		return web.Run(ctx, web.NewServer(cfg.ServeAddr, handler))
	},
}

