package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TemirB/merchant-orders-sync/internal/application/service"
	"github.com/TemirB/merchant-orders-sync/internal/auth"
	"github.com/TemirB/merchant-orders-sync/internal/cache"
	"github.com/TemirB/merchant-orders-sync/internal/config"
	"github.com/TemirB/merchant-orders-sync/internal/gateway"
	"github.com/TemirB/merchant-orders-sync/internal/httpapi"
	"github.com/TemirB/merchant-orders-sync/internal/journal"
	"github.com/TemirB/merchant-orders-sync/internal/ledger"
	"github.com/TemirB/merchant-orders-sync/internal/observability"
	"github.com/TemirB/merchant-orders-sync/internal/pkg/breaker"
	"github.com/TemirB/merchant-orders-sync/internal/poller"
	"github.com/TemirB/merchant-orders-sync/internal/projector"
	"github.com/TemirB/merchant-orders-sync/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, metricsHandler := newMetrics(cfg.MetricsBackend)

	creds := auth.NewCache(gateway.NewTokenIssuer(cfg.Remote), cfg.Credential.SafetyMargin, logger, metrics)
	client := gateway.New(cfg.Remote, creds, breaker.New(cfg.Breaker), logger, metrics)

	orders := store.New()
	applied := ledger.New()
	proj := projector.New(client, orders, cfg.Retry, logger)

	publisher := newPublisher(ctx, cfg.Kafka, logger)
	pl := poller.New(client, applied, proj, publisher, cfg.Poll.Interval, logger, metrics)

	svc := service.NewService(ctx, client, orders, cache.New(cfg.DetailCache.Size, cfg.DetailCache.TTL), creds, pl, logger)
	server := httpapi.New(svc, cfg.CORSOrigin, metricsHandler, logger, metrics)

	if _, err := creds.Get(ctx); err != nil {
		logger.Error("initial authentication failed, polling not started", zap.Error(err))
	} else if cfg.Poll.AutoStart {
		pl.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- server.ListenAndServe(ctx, cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", zap.Error(err))
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pl.Shutdown(shutdownCtx); err != nil {
		logger.Warn("poller did not stop in time", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Warn("journal close failed", zap.Error(err))
	}
	logger.Info("stopped",
		zap.Int("orders", orders.Len()),
		zap.Int("applied_events", applied.Len()),
	)
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func newMetrics(backend string) (observability.Metrics, http.Handler) {
	switch backend {
	case "prometheus":
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		return observability.NewPrometheus(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	case "inmem":
		m := observability.NewInmem(1000)
		return m, m
	default:
		return observability.NewNoop(), nil
	}
}

func newPublisher(ctx context.Context, cfg config.Kafka, logger *zap.Logger) journal.Publisher {
	if len(cfg.Brokers) == 0 {
		logger.Info("no kafka brokers configured, journal disabled")
		return journal.NewNoop()
	}

	topicCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := journal.EnsureTopic(topicCtx, cfg, logger); err != nil {
		logger.Warn("journal topic not ensured, publishing anyway", zap.Error(err))
	}
	return journal.NewKafka(journal.NewKafkaWriter(cfg), cfg.Workers, logger)
}
