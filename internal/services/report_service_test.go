package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/actaeon02/budget-tracker/internal/core"
	"github.com/actaeon02/budget-tracker/internal/report"
	"github.com/actaeon02/budget-tracker/internal/sheets"
	"github.com/actaeon02/budget-tracker/internal/sheets/memory"
)

type brokenReader struct{}

func (brokenReader) ReadAll(context.Context, sheets.Table) ([]sheets.Row, error) {
	return nil, errors.New("store unreachable")
}

type countingReader struct {
	*memory.Store
	reads int
}

func (r *countingReader) ReadAll(ctx context.Context, table sheets.Table) ([]sheets.Row, error) {
	r.reads++
	return r.Store.ReadAll(ctx, table)
}

func seededStore() *memory.Store {
	store := memory.New()
	store.Seed(sheets.Expenses, []sheets.Row{
		{"Timestamp", "User", "Purchase Date", "Item", "Amount", "Category", "Payment Method"},
		{"03/10/2024 10:00:00", "Mikael", "3/10/2024", "Coffee", "4.50", "Food & Drink", "Cash"},
	})
	store.Seed(sheets.Budget, []sheets.Row{
		{"Category", "Mikael", "Josephine", "Total Budget"},
		{"Food & Drink", "50", "50", "100"},
	})
	return store
}

func TestReportService_EvaluatesAndCaches(t *testing.T) {
	reader := &countingReader{Store: seededStore()}
	svc := NewReportService(reader, report.New(nil, nil, 10), time.Minute)
	ctx := context.Background()
	today := core.NewDate(2024, 3, 15)

	rep, err := svc.For(ctx, today)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.SpentTotal.Cents != 450 {
		t.Fatalf("spent = %d, want 450", rep.SpentTotal.Cents)
	}
	firstReads := reader.reads

	if _, err := svc.For(ctx, today); err != nil {
		t.Fatalf("cached report: %v", err)
	}
	if reader.reads != firstReads {
		t.Fatalf("cached evaluation still hit the store")
	}

	svc.Invalidate()
	if _, err := svc.For(ctx, today); err != nil {
		t.Fatalf("report after invalidate: %v", err)
	}
	if reader.reads == firstReads {
		t.Fatalf("invalidate did not force a fresh read")
	}
}

func TestReportService_StoreFailureIsFatal(t *testing.T) {
	svc := NewReportService(brokenReader{}, report.New(nil, nil, 10), time.Minute)
	if _, err := svc.For(context.Background(), core.NewDate(2024, 3, 15)); err == nil {
		t.Fatalf("expected store error to abort the evaluation")
	}
}
