package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"
	"go-chi-calculator/internal/session"
)

func main() {

	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	envFiles, err := loadDotEnv()
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger
	if err := observability.InitLogger(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	if len(envFiles) > 0 {
		observability.Logger.Info("environment loaded", zap.Strings("files", envFiles))
	}

	// Tracing, metrics and log export
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}
	defer telemetryShutdown(context.Background())

	// Sessions
	store := session.NewStore(session.Options{
		TTL:           cfg.Session.TTL.Duration,
		SweepInterval: cfg.Session.SweepInterval.Duration,
		MaxSessions:   cfg.Session.MaxSessions,
		Logger:        observability.Logger.Named("session"),
	})
	go store.Run(ctx)

	// Router
	router := server.NewRouter(store)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.HTTP.Addr),
			zap.Bool("otlp", cfg.OTLP.Enabled),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(ctx, srv, cfg)
}

func waitForShutdown(ctx context.Context, srv *http.Server, cfg *config.Config) {

	<-ctx.Done()

	observability.Logger.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout.Duration))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		observability.Logger.Error("shutdown failed", zap.Error(err))
	}
}
