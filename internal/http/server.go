// Package http serves the tracker's JSON API: transaction and income
// submission plus the period report and its chart data.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/actaeon02/budget-tracker/internal/services"
)

type Server struct {
	http.Server
	transactions *services.TransactionService
	reports      *services.ReportService
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

func NewServer(addr string, txs *services.TransactionService, reports *services.ReportService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		transactions: txs,
		reports:      reports,
		rateLimiter:  newRateLimiter(),
	}

	mux.HandleFunc("POST /api/transactions", s.middleware(s.handleSubmitTransaction))
	mux.HandleFunc("POST /api/income", s.middleware(s.handleSubmitIncome))
	mux.HandleFunc("GET /api/report", s.middleware(s.handleReport))
	mux.HandleFunc("GET /api/report/chart", s.middleware(s.handleReportChart))
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

func (s *Server) middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = newRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")

		ip := clientIP(r)
		if !s.rateLimiter.allow(ip) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip, "path", r.URL.Path, "request_id", reqID)
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		start := time.Now()
		next(w, r)
		slog.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", reqID,
			"duration", time.Since(start))
	}
}

func newRequestID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b[:])
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReadyz verifies the row store is reachable; a store outage
// turns the instance not-ready rather than serving stale reports.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.reports.Current(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, "row store unreachable")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

// Shutdown stops the listener and the rate limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
