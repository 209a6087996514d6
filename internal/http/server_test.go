package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/actaeon02/budget-tracker/internal/report"
	"github.com/actaeon02/budget-tracker/internal/services"
	"github.com/actaeon02/budget-tracker/internal/sheets"
	"github.com/actaeon02/budget-tracker/internal/sheets/memory"
)

func newTestServer(t *testing.T, store *memory.Store) *Server {
	t.Helper()
	txs := services.NewTransactionService(store, nil, nil)
	reports := services.NewReportService(store, report.New(nil, nil, 10), time.Minute)
	s := NewServer(":0", txs, reports)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s
}

func TestSubmitTransaction(t *testing.T) {
	store := memory.New()
	s := newTestServer(t, store)

	body := `{"user":"Mikael","purchase_date":"2024-03-15","item":"Lunch","amount":"12.50","category":"Food & Drink","payment_method":"CC"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if store.Len(sheets.Expenses) != 1 {
		t.Fatalf("sheet rows = %d, want 1", store.Len(sheets.Expenses))
	}
}

func TestSubmitTransaction_ValidationRejectedBeforeStore(t *testing.T) {
	store := memory.New()
	s := newTestServer(t, store)

	tests := []struct {
		name string
		body string
	}{
		{"empty item", `{"user":"Mikael","purchase_date":"2024-03-15","item":"","amount":"12.50","category":"Other","payment_method":"CC"}`},
		{"zero amount", `{"user":"Mikael","purchase_date":"2024-03-15","item":"x","amount":"0","category":"Other","payment_method":"CC"}`},
		{"bad date", `{"user":"Mikael","purchase_date":"15/03/2024","item":"x","amount":"5","category":"Other","payment_method":"CC"}`},
		{"bad payment method", `{"user":"Mikael","purchase_date":"2024-03-15","item":"x","amount":"5","category":"Other","payment_method":"Check"}`},
		{"item too long", `{"user":"Mikael","purchase_date":"2024-03-15","item":"` + strings.Repeat("x", 201) + `","amount":"5","category":"Other","payment_method":"CC"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.Server.Handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
	if store.Len(sheets.Expenses) != 0 {
		t.Fatalf("store touched by rejected submissions")
	}
}

func TestSubmitIncome(t *testing.T) {
	store := memory.New()
	s := newTestServer(t, store)

	body := `{"user":"Josephine","date":"2024-03-01","source":"Salary","description":"Monthly salary","amount":"3200"}`
	req := httptest.NewRequest(http.MethodPost, "/api/income", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if store.Len(sheets.Income) != 1 {
		t.Fatalf("income rows = %d, want 1", store.Len(sheets.Income))
	}
}

func TestReport(t *testing.T) {
	store := memory.New()
	store.Seed(sheets.Expenses, []sheets.Row{
		{"Timestamp", "User", "Purchase Date", "Item", "Amount", "Category", "Payment Method"},
		{"03/10/2024 10:00:00", "Mikael", "3/10/2024", "Coffee", "4.50", "Food & Drink", "Cash"},
		{"03/11/2024 10:00:00", "Mikael", "3/11/2024", "Bad", "abc", "Other", "Cash"},
	})
	store.Seed(sheets.Budget, []sheets.Row{
		{"Category", "Mikael", "Josephine", "Total Budget"},
		{"Food & Drink", "2", "2", "4"},
	})
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/report?date=2024-03-15", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var view struct {
		PeriodStart string `json:"period_start"`
		PeriodEnd   string `json:"period_end"`
		SpentTotal  string `json:"spent_total"`
		DroppedRows int    `json:"dropped_rows"`
		Budget      []struct {
			Category   string `json:"category"`
			Remaining  string `json:"remaining"`
			OverBudget bool   `json:"over_budget"`
		} `json:"budget"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.PeriodStart != "2024-02-28" || view.PeriodEnd != "2024-03-28" {
		t.Fatalf("period = %s..%s", view.PeriodStart, view.PeriodEnd)
	}
	if view.SpentTotal != "4.50" {
		t.Fatalf("spent = %s, want 4.50", view.SpentTotal)
	}
	if view.DroppedRows != 1 {
		t.Fatalf("dropped = %d, want 1", view.DroppedRows)
	}
	if len(view.Budget) != 1 || !view.Budget[0].OverBudget || view.Budget[0].Remaining != "-0.50" {
		t.Fatalf("budget = %+v", view.Budget)
	}
}

func TestReport_InvalidDateParam(t *testing.T) {
	s := newTestServer(t, memory.New())

	req := httptest.NewRequest(http.MethodGet, "/api/report?date=15-03-2024", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportChart(t *testing.T) {
	store := memory.New()
	store.Seed(sheets.Budget, []sheets.Row{
		{"Category", "Mikael", "Total Budget"},
		{"Bills", "100", "100"},
	})
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/report/chart?date=2024-03-15", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var chart report.BarChart
	if err := json.Unmarshal(rec.Body.Bytes(), &chart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(chart.Labels) != 1 || chart.Labels[0] != "Bills" {
		t.Fatalf("labels = %v", chart.Labels)
	}
	if chart.Colors[0] != report.WithinBudgetColor {
		t.Fatalf("color = %s", chart.Colors[0])
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, memory.New())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
