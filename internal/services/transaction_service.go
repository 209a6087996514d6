// Package services orchestrates submissions and report evaluation
// across the row store, the local queue, and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/actaeon02/budget-tracker/internal/amqp"
	"github.com/actaeon02/budget-tracker/internal/core"
	"github.com/actaeon02/budget-tracker/internal/report"
	"github.com/actaeon02/budget-tracker/internal/sheets"
	"github.com/actaeon02/budget-tracker/internal/storage"
)

// TransactionService validates submissions and writes them out. With
// an outbox configured, rows land in the local queue and a sync
// message is published; otherwise they go straight to the row store.
type TransactionService struct {
	appender   sheets.RowAppender
	outbox     *storage.SQLiteRepository
	amqpClient *amqp.Client
	now        func() time.Time
}

func NewTransactionService(appender sheets.RowAppender, outbox *storage.SQLiteRepository, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		appender:   appender,
		outbox:     outbox,
		amqpClient: amqpClient,
		now:        time.Now,
	}
}

// SubmitTransaction validates and records one expense. Validation
// failures reject the submission before anything is written.
func (s *TransactionService) SubmitTransaction(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		rowsRejected.WithLabelValues(string(sheets.Expenses)).Inc()
		return fmt.Errorf("validate transaction: %w", err)
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = s.now()
	}
	return s.submit(ctx, sheets.Expenses, expenseCells(tx))
}

// SubmitIncome validates and records one income entry.
func (s *TransactionService) SubmitIncome(ctx context.Context, rec core.IncomeRecord) error {
	if err := rec.Validate(); err != nil {
		rowsRejected.WithLabelValues(string(sheets.Income)).Inc()
		return fmt.Errorf("validate income: %w", err)
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now()
	}
	return s.submit(ctx, sheets.Income, incomeCells(rec))
}

func (s *TransactionService) submit(ctx context.Context, table sheets.Table, cells []string) error {
	if s.outbox != nil {
		id, err := s.outbox.Enqueue(ctx, table, cells)
		if err != nil {
			appendFailures.WithLabelValues(string(table)).Inc()
			return fmt.Errorf("queue row: %w", err)
		}
		if s.amqpClient != nil {
			// The periodic sweep covers a lost message, so a publish
			// failure never fails the submission.
			if err := s.amqpClient.PublishRowSync(ctx, id, table, 1); err != nil {
				slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
			}
		}
		rowsSubmitted.WithLabelValues(string(table)).Inc()
		return nil
	}

	anyCells := make([]any, len(cells))
	for i, c := range cells {
		anyCells[i] = c
	}
	if err := s.appender.AppendRow(ctx, table, anyCells); err != nil {
		appendFailures.WithLabelValues(string(table)).Inc()
		return fmt.Errorf("append row: %w", err)
	}
	rowsSubmitted.WithLabelValues(string(table)).Inc()
	return nil
}

// expenseCells renders a transaction in the Expenses wire order.
func expenseCells(tx core.Transaction) []string {
	return []string{
		tx.Timestamp.Format(report.TimestampLayout),
		tx.User,
		tx.PurchaseDate.Format(report.DateLayout),
		tx.Item,
		formatCents(tx.Amount),
		tx.Category,
		string(tx.PaymentMethod),
	}
}

// incomeCells renders an income record in the Income wire order.
func incomeCells(rec core.IncomeRecord) []string {
	return []string{
		rec.Timestamp.Format(report.TimestampLayout),
		rec.User,
		rec.Date.Format(report.DateLayout),
		rec.Source,
		rec.Description,
		formatCents(rec.Amount),
	}
}

// formatCents renders a plain decimal without thousands separators so
// the sheet parses it as a number.
func formatCents(m core.Money) string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}
