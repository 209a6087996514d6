package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_tracker_rows_submitted_total",
		Help: "Rows accepted for append, by table.",
	}, []string{"table"})

	rowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_tracker_rows_rejected_total",
		Help: "Submissions rejected by validation, by table.",
	}, []string{"table"})

	appendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_tracker_append_failures_total",
		Help: "Append attempts the row store refused, by table.",
	}, []string{"table"})

	reportsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budget_tracker_reports_computed_total",
		Help: "Reports computed from a fresh spreadsheet read.",
	})

	reportCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budget_tracker_report_cache_hits_total",
		Help: "Reports served from the in-process cache.",
	})

	droppedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "budget_tracker_dropped_rows",
		Help: "Malformed rows dropped during the most recent report evaluation.",
	})
)
