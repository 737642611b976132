package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/hockey-match-engine/internal/config"
	"github.com/maxviazov/hockey-match-engine/internal/handler"
	"github.com/maxviazov/hockey-match-engine/internal/logger"
	"github.com/maxviazov/hockey-match-engine/internal/publisher"
	"github.com/maxviazov/hockey-match-engine/internal/repository"
	"github.com/maxviazov/hockey-match-engine/internal/repository/postgres"
	"github.com/maxviazov/hockey-match-engine/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	flag.Parse()

	// Load application config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := db.Migrate(ctx, cfg.Postgres.MigrationsDir, appLogger); err != nil {
			appLogger.Fatal().Err(err).Msg("❌ Migrations failed")
		}
	}

	pool := db.Pool()
	var (
		pub    service.EventPublisher = publisher.Noop{}
		checks []handler.Check
	)
	if cfg.Redis.Enabled {
		client, err := publisher.Connect(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("❌ Redis connection failed")
		}
		defer client.Close()
		pub = publisher.NewStreamPublisher(client, cfg.Redis.StreamPrefix, cfg.Redis.MaxLen)
		checks = append(checks, handler.Check{
			Name:   "events",
			Pinger: handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }),
		})
		appLogger.Info().Str("addr", cfg.Redis.Addr).Str("prefix", cfg.Redis.StreamPrefix).Msg("event feed enabled")
	}

	matchSvc := service.NewMatchService(
		postgres.NewMatchRepository(pool),
		postgres.NewEventRepository(pool),
		postgres.NewCommandRepository(pool),
		postgres.NewTxManager(pool),
		pub,
		cfg.Engine.SimulateMaxTurns,
		appLogger,
	)

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(appLogger))
	handler.Register(r, postgres.NewPinger(pool), matchSvc, checks...)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		appLogger.Error().Err(err).Msg("http server failed")
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("server stopped")
}
