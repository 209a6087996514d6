package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/actaeon02/budget-tracker/internal/core"
)

const maxBodySize = 64 * 1024

type transactionRequest struct {
	User          string `json:"user"`
	PurchaseDate  string `json:"purchase_date"`
	Item          string `json:"item"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method"`
}

type incomeRequest struct {
	User        string `json:"user"`
	Date        string `json:"date"`
	Source      string `json:"source"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

func (s *Server) handleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseISODate(req.PurchaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid purchase_date: %v", err))
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: must be a positive decimal")
		return
	}

	tx := core.Transaction{
		User:          strings.TrimSpace(req.User),
		PurchaseDate:  date,
		Item:          strings.TrimSpace(req.Item),
		Amount:        core.Money{Cents: cents},
		Category:      strings.TrimSpace(req.Category),
		PaymentMethod: core.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
	}

	if err := s.transactions.SubmitTransaction(r.Context(), tx); err != nil {
		s.writeSubmitError(w, r, err)
		return
	}

	s.reports.Invalidate()
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleSubmitIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseISODate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date: %v", err))
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: must be a positive decimal")
		return
	}

	rec := core.IncomeRecord{
		User:        strings.TrimSpace(req.User),
		Date:        date,
		Source:      strings.TrimSpace(req.Source),
		Description: strings.TrimSpace(req.Description),
		Amount:      core.Money{Cents: cents},
	}

	if err := s.transactions.SubmitIncome(r.Context(), rec); err != nil {
		s.writeSubmitError(w, r, err)
		return
	}

	s.reports.Invalidate()
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	today, err := reportDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.reports.For(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report evaluation failed", "error", err)
		writeError(w, http.StatusBadGateway, "row store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, buildReportView(rep))
}

func (s *Server) handleReportChart(w http.ResponseWriter, r *http.Request) {
	today, err := reportDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.reports.For(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report evaluation failed", "error", err)
		writeError(w, http.StatusBadGateway, "row store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, buildChartView(rep))
}

// writeSubmitError maps validation failures to 400 and store append
// failures to 502 with a retry hint.
func (s *Server) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	if isValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "Submission failed", "error", err)
	writeError(w, http.StatusBadGateway, "could not record the entry, please retry")
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidDate, core.ErrInvalidAmount, core.ErrEmptyItem,
		core.ErrItemTooLong, core.ErrEmptyUser, core.ErrUnknownPaymentMethod,
		core.ErrUnknownSource,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// reportDate reads the optional date parameter; the report defaults
// to the period containing today.
func reportDate(r *http.Request) (core.Date, error) {
	param := strings.TrimSpace(r.URL.Query().Get("date"))
	if param == "" {
		return core.DateOf(time.Now()), nil
	}
	d, err := parseISODate(param)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date parameter: %w", err)
	}
	return d, nil
}

func parseISODate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, errors.New("expected YYYY-MM-DD")
	}
	return core.DateOf(t), nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer io.Copy(io.Discard, body)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
