package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/wayfaren/crowdpulse/internal/adapter/http"
	kafkaadapter "github.com/wayfaren/crowdpulse/internal/adapter/kafka"
	"github.com/wayfaren/crowdpulse/internal/adapter/redisstore"
	"github.com/wayfaren/crowdpulse/internal/config"
	"github.com/wayfaren/crowdpulse/internal/festival"
	"github.com/wayfaren/crowdpulse/internal/ledger"
	"github.com/wayfaren/crowdpulse/internal/observability"
	"github.com/wayfaren/crowdpulse/internal/pipeline"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := redisstore.New(cfg)
	if err := store.Ping(ctx); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	ldg := ledger.New(store, clock, logger)

	// Festival reference data loads once, asynchronously; a failed or slow
	// fetch leaves the resolver serving neutral impacts.
	resolver := festival.NewResolver(clock, logger, metrics)
	source := festival.NewSource(cfg.FestivalDataURL, cfg.FestivalFetchTimeout, logger)
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.FestivalFetchTimeout)
		defer cancel()
		source.LoadInto(loadCtx, resolver)
		logger.Info("festival signal ready",
			"active_today", len(resolver.ActiveFestivals(clock.Now())))
	}()

	reader := kafkaadapter.NewReader(cfg, logger)
	p := pipeline.New(reader, ldg, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start feedback pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("shutdown complete")
}
