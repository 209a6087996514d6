// Package backend wires the configured data backend: where submitted
// rows are written and where report reads come from.
//
// Backends:
//   - memory: in-process tables, for local development and tests.
//   - sheets: reads and writes go straight to the spreadsheet.
//   - sqlite: writes land in the local queue (synced by the worker),
//     reads still come from the spreadsheet, the system of record.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/actaeon02/budget-tracker/internal/amqp"
	"github.com/actaeon02/budget-tracker/internal/config"
	"github.com/actaeon02/budget-tracker/internal/sheets"
	gsheet "github.com/actaeon02/budget-tracker/internal/sheets/google"
	"github.com/actaeon02/budget-tracker/internal/sheets/memory"
	"github.com/actaeon02/budget-tracker/internal/storage"
)

type CleanupFunc func() error

// Result carries the wired backend pieces. Outbox and Queue are nil
// unless the sqlite backend is selected.
type Result struct {
	Appender sheets.RowAppender
	Reader   sheets.RowReader
	Outbox   *storage.SQLiteRepository
	Queue    *amqp.Client
	Cleanup  CleanupFunc
}

func Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	switch cfg.DataBackend {
	case "memory":
		store := memory.New()
		slog.InfoContext(ctx, "Initialized memory backend")
		return &Result{Appender: store, Reader: store}, nil

	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		slog.InfoContext(ctx, "Initialized sheets backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
		return &Result{Appender: cli, Reader: cli}, nil

	case "sqlite":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		outbox, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}

		var queue *amqp.Client
		if cfg.AMQPURL != "" {
			queue, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				slog.WarnContext(ctx, "AMQP unavailable, relying on periodic sync", "error", err)
			}
		}

		cleanup := func() error {
			var errs []error
			if queue != nil {
				errs = append(errs, queue.Close())
			}
			errs = append(errs, outbox.Close())
			return errors.Join(errs...)
		}

		slog.InfoContext(ctx, "Initialized sqlite backend",
			"db_path", cfg.SQLiteDBPath, "amqp_enabled", queue != nil)
		return &Result{
			Appender: cli,
			Reader:   cli,
			Outbox:   outbox,
			Queue:    queue,
			Cleanup:  cleanup,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}
