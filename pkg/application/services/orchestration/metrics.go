package orchestration

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planforge_runs_started_total",
		Help: "Planning runs started",
	})
	runsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planforge_runs_committed_total",
		Help: "Planning runs that completed and published results",
	})
	runsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planforge_runs_failed_total",
		Help: "Planning runs aborted by data-source failure",
	})
	runsAborted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planforge_runs_aborted_total",
		Help: "Planning runs cancelled or timed out",
	})
	skusProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planforge_skus_processed_total",
		Help: "SKUs that received a forecast across all runs",
	})
	risksDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planforge_risks_detected_total",
		Help: "Risk records created, by risk type",
	}, []string{"type"})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "planforge_run_duration_seconds",
		Help:    "Wall-clock duration of committed planning runs",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
