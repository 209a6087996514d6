package memory

import (
	"context"
	"testing"

	ports "github.com/actaeon02/budget-tracker/internal/sheets"
)

func TestAppendAndReadAll(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.AppendRow(ctx, ports.Expenses, []any{"03/15/2024 18:30:00", "Mikael", "3/15/2024", "Lunch", 12.5, "Food & Drink", "CC"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	rows, err := s.ReadAll(ctx, ports.Expenses)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][4] != "12.5" {
		t.Fatalf("amount cell = %q, want 12.5", rows[0][4])
	}

	// Tables are independent.
	income, err := s.ReadAll(ctx, ports.Income)
	if err != nil {
		t.Fatalf("read income: %v", err)
	}
	if len(income) != 0 {
		t.Fatalf("income rows = %d, want 0", len(income))
	}
}

func TestSeedCopiesRows(t *testing.T) {
	s := New()
	seed := []ports.Row{{"Category", "Mikael", "Total Budget"}, {"Groceries", "100", "100"}}
	s.Seed(ports.Budget, seed)

	seed[1][0] = "mutated"

	rows, err := s.ReadAll(context.Background(), ports.Budget)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rows[1][0] != "Groceries" {
		t.Fatalf("seeded row mutated through caller slice: %q", rows[1][0])
	}
}
