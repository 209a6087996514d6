// Package worker pushes locally queued rows to the spreadsheet. It
// consumes sync messages from AMQP and also sweeps the pending queue
// on a timer to recover rows whose messages were lost.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/actaeon02/budget-tracker/internal/amqp"
	"github.com/actaeon02/budget-tracker/internal/sheets"
	"github.com/actaeon02/budget-tracker/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	appender  sheets.RowAppender
	queue     *amqp.Client
	batchSize int
	interval  time.Duration

	// Rows appended to the sheet whose MarkSynced write failed. Retries
	// for these rows redo only the bookkeeping, not the append.
	mu       sync.Mutex
	appended map[int64]struct{}
}

func NewSyncWorker(storage *storage.SQLiteRepository, appender sheets.RowAppender, queue *amqp.Client, batchSize int, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		appender:  appender,
		queue:     queue,
		batchSize: batchSize,
		interval:  interval,
		appended:  make(map[int64]struct{}),
	}
}

// Run consumes sync messages and sweeps the pending queue until the
// context is cancelled.
func (w *SyncWorker) Run(ctx context.Context) error {
	if err := w.StartupSyncCheck(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup sync check failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.queue != nil {
		g.Go(func() error {
			return w.queue.ConsumeRowSync(ctx, func(msg *amqp.RowSyncMessage) error {
				return w.HandleSyncMessage(ctx, msg)
			})
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.ProcessPending(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic sync failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleSyncMessage pushes the row named by one AMQP message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RowSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID, "table", msg.Table, "version", msg.Version)

	row, err := w.storage.Get(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get row from storage: %w", err)
	}
	if msg.Table != "" && msg.Table != row.Table {
		// The stored row wins; the mismatch points at a producer bug.
		slog.WarnContext(ctx, "Sync message table does not match stored row",
			"id", msg.ID, "message_table", msg.Table, "row_table", row.Table)
	}
	if row.Synced {
		slog.InfoContext(ctx, "Row already synced, acking duplicate message", "id", msg.ID)
		return nil
	}
	if msg.Version < row.Version {
		// A newer message for this row is already in flight.
		slog.InfoContext(ctx, "Skipping stale sync message",
			"id", msg.ID, "message_version", msg.Version, "row_version", row.Version)
		return nil
	}

	return w.syncRow(ctx, row)
}

// ProcessPending sweeps unsynced rows as a backup for lost messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.Pending(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending rows: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending rows", "count", len(pending))
	for _, row := range pending {
		if err := w.syncRow(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to sync row", "id", row.ID, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck drains rows left pending across a worker restart.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.Pending(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending rows for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending rows found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending rows on startup", "count", len(pending))
	synced := 0
	errored := 0
	for _, row := range pending {
		if err := w.syncRow(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Failed to sync row during startup", "id", row.ID, "error", err)
			errored++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending), "synced", synced, "errors", errored)
	return nil
}

func (w *SyncWorker) syncRow(ctx context.Context, row storage.PendingRow) error {
	if !w.alreadyAppended(row.ID) {
		cells := make([]any, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c
		}
		if err := w.appender.AppendRow(ctx, row.Table, cells); err != nil {
			if markErr := w.storage.MarkSyncError(ctx, row.ID, err.Error()); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", row.ID, "error", markErr)
			}
			return fmt.Errorf("append to sheet: %w", err)
		}
	}

	if err := w.storage.MarkSynced(ctx, row.ID); err != nil {
		// The sheet already has the row; remember that so the next
		// attempt retries only this write instead of re-appending.
		w.rememberAppended(row.ID)
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", row.ID, "error", err)
		return fmt.Errorf("mark synced: %w", err)
	}
	w.forgetAppended(row.ID)

	slog.InfoContext(ctx, "Row synced", "id", row.ID, "table", row.Table)
	return nil
}

func (w *SyncWorker) alreadyAppended(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.appended[id]
	return ok
}

func (w *SyncWorker) rememberAppended(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.appended[id] = struct{}{}
}

func (w *SyncWorker) forgetAppended(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.appended, id)
}
