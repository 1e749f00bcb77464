package main

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	rustywords "github.com/oversys/Rusty-Words"
	"github.com/oversys/Rusty-Words/internal/config"
	"github.com/oversys/Rusty-Words/internal/errors"
	"github.com/oversys/Rusty-Words/pkg/assets"
	"github.com/oversys/Rusty-Words/pkg/words"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Rusty Words server",
		Long: `Start the HTTP server that hosts the word list, the word API and
the navigation websocket.

Configuration is read from rustywords.json in the working directory
when present, or from the file given with --config.

Examples:
  rustywords serve
  rustywords serve --addr=0.0.0.0:8080
  rustywords serve --config=/etc/rustywords.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				if err := applyAddr(cfg, addr); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to rustywords.json")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address host:port (default from config)")

	return cmd
}

// loadConfig reads path, or rustywords.json in the working directory
// falling back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadOrDefault(".")
}

func applyAddr(cfg *config.Config, addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("E400").WithDetailf("invalid --addr %q", addr).Wrap(err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("E102").WithDetailf("invalid port %q", port)
	}
	cfg.Server.Host = host
	cfg.Server.Port = p
	return nil
}

func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	store, err := words.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()

	manifest, err := assets.LoadOptional(cfg.ManifestPath())
	if err != nil {
		return err
	}
	if manifest.Len() > 0 {
		logger.Info("asset manifest loaded", "path", cfg.ManifestPath(), "entries", manifest.Len())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	app := rustywords.New(rustywords.Config{
		Store: store,
		Static: rustywords.StaticConfig{
			Dir:      cfg.StaticPath(),
			Prefix:   cfg.Static.Prefix,
			Manifest: manifest,
		},
		Metrics: rustywords.MetricsConfig{
			Registry: registry,
			Path:     metricsPath,
		},
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	out := cmd.OutOrStdout()
	success(out, "Rusty Words listening on http://%s", cfg.Address())
	info(out, "database: %s", cfg.DatabasePath())
	if metricsPath != "" {
		info(out, "metrics:  http://%s%s", cfg.Address(), metricsPath)
	}

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
