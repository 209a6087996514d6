package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/actaeon02/budget-tracker/internal/amqp"
	"github.com/actaeon02/budget-tracker/internal/config"
	gsheet "github.com/actaeon02/budget-tracker/internal/sheets/google"
	"github.com/actaeon02/budget-tracker/internal/storage"
	"github.com/actaeon02/budget-tracker/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting budget-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	var queue *amqp.Client
	if cfg.AMQPURL != "" {
		queue, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer queue.Close()
	} else {
		logger.Info("AMQP disabled, running with periodic sync only")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	w := worker.NewSyncWorker(repo, sheetsClient, queue, cfg.SyncBatchSize, cfg.SyncInterval)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
