package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/actaeon02/budget-tracker/internal/cache"
	"github.com/actaeon02/budget-tracker/internal/core"
	"github.com/actaeon02/budget-tracker/internal/report"
	"github.com/actaeon02/budget-tracker/internal/sheets"
)

// ReportService reads the full row store and evaluates the dashboard
// report, caching results per date between reads.
type ReportService struct {
	reader   sheets.RowReader
	pipeline *report.Pipeline
	cache    cache.Cache[report.Report]
	now      func() time.Time
}

func NewReportService(reader sheets.RowReader, pipeline *report.Pipeline, ttl time.Duration) *ReportService {
	return &ReportService{
		reader:   reader,
		pipeline: pipeline,
		cache:    cache.NewLRUCache[report.Report](32, ttl),
		now:      time.Now,
	}
}

// Current evaluates the report for today's accounting period.
func (s *ReportService) Current(ctx context.Context) (report.Report, error) {
	return s.For(ctx, core.DateOf(s.now()))
}

// For evaluates the report for the accounting period containing the
// given date. A store read failure is fatal for the evaluation; no
// partial report is returned.
func (s *ReportService) For(ctx context.Context, today core.Date) (report.Report, error) {
	key := today.Format("2006-01-02")
	if rep, ok := s.cache.Get(key); ok {
		reportCacheHits.Inc()
		return rep, nil
	}

	expenses, err := s.reader.ReadAll(ctx, sheets.Expenses)
	if err != nil {
		return report.Report{}, fmt.Errorf("read expenses: %w", err)
	}
	income, err := s.reader.ReadAll(ctx, sheets.Income)
	if err != nil {
		return report.Report{}, fmt.Errorf("read income: %w", err)
	}
	budget, err := s.reader.ReadAll(ctx, sheets.Budget)
	if err != nil {
		return report.Report{}, fmt.Errorf("read budget: %w", err)
	}

	rep := s.pipeline.Evaluate(today, expenses, income, budget)
	reportsComputed.Inc()
	droppedRows.Set(float64(rep.DroppedRows))
	if rep.DroppedRows > 0 {
		slog.WarnContext(ctx, "Dropped malformed rows during report evaluation",
			"dropped", rep.DroppedRows, "date", key)
	}

	s.cache.Set(key, rep)
	return rep, nil
}

// Invalidate drops every cached report. Called after a successful
// submission since a backdated row can change any period.
func (s *ReportService) Invalidate() {
	s.cache.Clear()
}
