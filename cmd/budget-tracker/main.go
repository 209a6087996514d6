package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/actaeon02/budget-tracker/internal/backend"
	"github.com/actaeon02/budget-tracker/internal/config"
	apphttp "github.com/actaeon02/budget-tracker/internal/http"
	"github.com/actaeon02/budget-tracker/internal/report"
	"github.com/actaeon02/budget-tracker/internal/services"
)

func main() {
	// .env is for local development; absence is fine in containers.
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, err := backend.Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer res.Cleanup()
	}

	txService := services.NewTransactionService(res.Appender, res.Outbox, res.Queue)
	pipeline := report.New(cfg.Categories, cfg.Users, cfg.RecentN)
	reportService := services.NewReportService(res.Reader, pipeline, cfg.ReportCacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, txService, reportService)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting budget-tracker", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
