package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"swiftindex/internal/audit"
	httpapi "swiftindex/internal/http"
	"swiftindex/internal/platform/config"
	"swiftindex/internal/platform/httpserver"
	"swiftindex/internal/platform/logger"
	"swiftindex/internal/platform/metrics"
	"swiftindex/internal/swift"
	"swiftindex/internal/swift/handler"
	"swiftindex/internal/swift/ingest"
	"swiftindex/internal/swift/service"
	"swiftindex/internal/swift/store"
)

// main wires dependencies and keeps the server lifecycle small. The dataset
// load runs to completion before the listener starts: the service never
// comes up over an unknown dataset state.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	ctx := context.Background()

	var recordStore swift.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := store.Migrate(ctx, pool); err != nil {
			log.Error("migrate", "error", err)
			os.Exit(1)
		}
		recordStore = store.NewPostgresStore(pool)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store")
		recordStore = store.NewMemoryStore()
	}

	var auditor audit.Publisher = audit.NopPublisher{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(brokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("connect kafka audit sink", "error", err)
			os.Exit(1)
		}
		auditor = kafka
	}
	defer auditor.Close()

	loader := ingest.NewLoader(recordStore, log, m, auditor, cfg.IngestTimeout)
	if _, err := loader.LoadFile(ctx, cfg.CSVPath); err != nil {
		log.Error("dataset load failed", "source", cfg.CSVPath, "error", err)
		os.Exit(1)
	}

	svc := service.New(recordStore, log, m, auditor)
	router := httpapi.NewRouter(handler.New(svc, log, m))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting swiftindex", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
