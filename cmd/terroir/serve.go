package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/terroir/docs"
	"github.com/HerbHall/terroir/internal/server"
	"github.com/HerbHall/terroir/internal/simulation"
	"github.com/HerbHall/terroir/internal/version"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Routes:
  GET  /api/v1/health
  GET  /api/v1/simulate            query: temperature, rainfall, altitude, soil
  POST /api/v1/simulate            body: {"temperature", "rainfall", "altitude", "soil_type"}
  GET  /api/v1/simulate/live       websocket, one TerroirInput per message
  GET  /api/v1/regions[/{id}]
  GET  /api/v1/grapes[/{id}]       query: color
  GET  /api/v1/soils
  GET  /metrics
  GET  /swagger/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "HTTP port")
	cmd.Flags().String("host", "0.0.0.0", "HTTP bind address")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	v := a.cfg.Viper()
	if err := v.BindPFlag("server.port", cmd.Flags().Lookup("port")); err != nil {
		return fmt.Errorf("bind port flag: %w", err)
	}
	if err := v.BindPFlag("server.host", cmd.Flags().Lookup("host")); err != nil {
		return fmt.Errorf("bind host flag: %w", err)
	}

	a.watchConfig()

	if dangling := a.engine.Catalog().DanglingReferences(); len(dangling) > 0 {
		a.logger.Warn("catalog relationships reference unknown ids; they are skipped",
			zap.Int("count", len(dangling)))
	}

	var (
		reg     *prometheus.Registry
		metrics *simulation.Metrics
	)
	if a.cfg.GetBool("metrics.enabled") {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := simulation.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("register simulation metrics: %w", err)
		}
		metrics = m
	}

	handler := simulation.NewHandler(a.engine, metrics, a.logger,
		simulation.WithOriginPatterns(a.cfg.GetStringSlice("server.allowed_origins")...),
		simulation.WithResultCache(a.cfg.GetDuration("server.cache_ttl")))

	registrars := []server.RouteRegistrar{handler}
	if a.cfg.GetBool("server.swagger") {
		registrars = append(registrars, docs.Routes{})
	}

	addr := a.cfg.Addr()
	srv, err := server.New(addr, a.logger, server.Options{
		RateLimit: a.cfg.GetFloat64("server.rate_limit"),
		RateBurst: a.cfg.GetInt("server.rate_burst"),
		Registry:  reg,
	}, registrars...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	a.logger.Info("terroir server ready", append(version.Fields(), zap.String("addr", addr))...)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GetDuration("server.shutdown_timeout"))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	a.logger.Info("terroir server stopped")
	return nil
}

// watchConfig reapplies log.level when the config file changes on disk.
func (a *app) watchConfig() {
	v := a.cfg.Viper()
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		lvl, err := zapcore.ParseLevel(a.cfg.GetString("log.level"))
		if err != nil {
			a.logger.Warn("ignoring invalid log.level", zap.String("file", e.Name), zap.Error(err))
			return
		}
		a.level.SetLevel(lvl)
		a.logger.Info("config reloaded", zap.String("file", e.Name), zap.Stringer("log_level", lvl))
	})
	v.WatchConfig()
}
