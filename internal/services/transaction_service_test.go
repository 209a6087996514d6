package services

import (
	"context"
	"testing"
	"time"

	"github.com/actaeon02/budget-tracker/internal/core"
	"github.com/actaeon02/budget-tracker/internal/sheets"
	"github.com/actaeon02/budget-tracker/internal/sheets/memory"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
}

func TestSubmitTransaction_WritesWireRow(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, nil, nil)
	svc.now = fixedNow

	tx := core.Transaction{
		User:          "Mikael",
		PurchaseDate:  core.NewDate(2024, 3, 15),
		Item:          "Lunch",
		Amount:        core.Money{Cents: 1250},
		Category:      "Food & Drink",
		PaymentMethod: core.CreditCard,
	}
	if err := svc.SubmitTransaction(context.Background(), tx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rows, _ := store.ReadAll(context.Background(), sheets.Expenses)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	want := sheets.Row{"03/15/2024 18:30:00", "Mikael", "3/15/2024", "Lunch", "12.50", "Food & Drink", "CC"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, rows[0][i], want[i])
		}
	}
}

func TestSubmitTransaction_RejectsInvalidBeforeWrite(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, nil, nil)

	tx := core.Transaction{
		User:          "Mikael",
		PurchaseDate:  core.NewDate(2024, 3, 15),
		Item:          "",
		Amount:        core.Money{Cents: 1250},
		PaymentMethod: core.Cash,
	}
	if err := svc.SubmitTransaction(context.Background(), tx); err == nil {
		t.Fatalf("expected validation error")
	}
	if store.Len(sheets.Expenses) != 0 {
		t.Fatalf("store touched despite validation failure")
	}
}

func TestSubmitIncome_WritesWireRow(t *testing.T) {
	store := memory.New()
	svc := NewTransactionService(store, nil, nil)
	svc.now = fixedNow

	rec := core.IncomeRecord{
		User:        "Josephine",
		Date:        core.NewDate(2024, 3, 1),
		Source:      "Salary",
		Description: "Monthly salary",
		Amount:      core.Money{Cents: 320000},
	}
	if err := svc.SubmitIncome(context.Background(), rec); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rows, _ := store.ReadAll(context.Background(), sheets.Income)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][5] != "3200.00" {
		t.Fatalf("amount cell = %q, want 3200.00", rows[0][5])
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1250, "12.50"},
		{5, "0.05"},
		{320000, "3200.00"},
		{99, "0.99"},
	}
	for _, tc := range cases {
		if got := formatCents(core.Money{Cents: tc.cents}); got != tc.want {
			t.Fatalf("formatCents(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}
