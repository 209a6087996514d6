// Package storage is the local write-ahead queue for spreadsheet rows.
// Rows accepted by the tracker are enqueued here first and pushed to
// the spreadsheet by the sync worker, so a submission survives a sheet
// outage.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/actaeon02/budget-tracker/internal/sheets"

	_ "modernc.org/sqlite"
)

// PendingRow is one queued spreadsheet row.
type PendingRow struct {
	ID        int64
	Table     sheets.Table
	Cells     []string
	Version   int64
	CreatedAt time.Time
	Synced    bool
	SyncError string
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Enqueue stores one row for later sync and returns its queue id.
func (r *SQLiteRepository) Enqueue(ctx context.Context, table sheets.Table, cells []string) (int64, error) {
	payload, err := json.Marshal(cells)
	if err != nil {
		return 0, fmt.Errorf("marshal cells: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO pending_rows (tbl, cells) VALUES (?, ?)`,
		string(table), string(payload))
	if err != nil {
		return 0, fmt.Errorf("enqueue row: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Row queued for sync", "id", id, "table", table)
	return id, nil
}

// Get returns one pending row by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (PendingRow, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, tbl, cells, version, created_at, synced_at IS NOT NULL, sync_error
		 FROM pending_rows WHERE id = ?`, id)
	return scanPendingRow(row)
}

// Pending returns up to limit unsynced rows, oldest first.
func (r *SQLiteRepository) Pending(ctx context.Context, limit int) ([]PendingRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tbl, cells, version, created_at, synced_at IS NOT NULL, sync_error
		 FROM pending_rows WHERE synced_at IS NULL
		 ORDER BY created_at, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending rows: %w", err)
	}
	defer rows.Close()

	var out []PendingRow
	for rows.Next() {
		pr, err := scanPendingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// MarkSynced records a successful push to the spreadsheet.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pending_rows SET synced_at = CURRENT_TIMESTAMP, sync_error = '' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark row synced: %w", err)
	}
	slog.InfoContext(ctx, "Row marked as synced", "id", id)
	return nil
}

// MarkSyncError records a failed push; the row stays pending and bumps
// its version so stale queue messages can be detected.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64, msg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pending_rows SET sync_error = ?, version = version + 1 WHERE id = ?`, msg, id)
	if err != nil {
		return fmt.Errorf("mark row sync error: %w", err)
	}
	slog.WarnContext(ctx, "Row marked with sync error", "id", id, "error", msg)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPendingRow(s rowScanner) (PendingRow, error) {
	var (
		pr      PendingRow
		tbl     string
		payload string
	)
	if err := s.Scan(&pr.ID, &tbl, &payload, &pr.Version, &pr.CreatedAt, &pr.Synced, &pr.SyncError); err != nil {
		return PendingRow{}, fmt.Errorf("scan pending row: %w", err)
	}
	pr.Table = sheets.Table(tbl)
	if err := json.Unmarshal([]byte(payload), &pr.Cells); err != nil {
		return PendingRow{}, fmt.Errorf("unmarshal cells for row %d: %w", pr.ID, err)
	}
	return pr, nil
}
