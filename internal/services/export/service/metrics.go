package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type runMetrics struct {
	runs          *prometheus.CounterVec
	rows          *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
}

// newRunMetrics registers on reg; a nil reg keeps the collectors private
func newRunMetrics(reg prometheus.Registerer) *runMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &runMetrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orderexport_runs_total",
			Help: "Export runs by mode and outcome.",
		}, []string{"mode", "status"}),
		rows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orderexport_rows_exported_total",
			Help: "Order rows written by successful runs.",
		}, []string{"mode"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orderexport_run_duration_seconds",
			Help:    "Wall time of export runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"mode"}),
		stageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "orderexport_stage_failures_total",
			Help: "Failed runs by the stage that failed.",
		}, []string{"stage"}),
	}
}
