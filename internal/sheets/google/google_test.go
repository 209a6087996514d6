package google

import (
	"testing"

	ports "github.com/actaeon02/budget-tracker/internal/sheets"
)

func TestSheetNameFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_EXPENSES_SHEET_NAME", "")
	if got := sheetNameFromEnv("GOOGLE_EXPENSES_SHEET_NAME", ports.Expenses); got != "Expenses" {
		t.Fatalf("default name = %q, want Expenses", got)
	}

	t.Setenv("GOOGLE_EXPENSES_SHEET_NAME", "  2025 Expenses  ")
	if got := sheetNameFromEnv("GOOGLE_EXPENSES_SHEET_NAME", ports.Expenses); got != "2025 Expenses" {
		t.Fatalf("override name = %q, want trimmed override", got)
	}
}

func TestToStrings(t *testing.T) {
	in := []interface{}{" Mikael ", 42.5, true, ""}
	got := toStrings(in)
	want := []string{"Mikael", "42.5", "true", ""}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}
