package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SweepMetrics contains Prometheus metrics for the due-detection sweep.
type SweepMetrics struct {
	SweepsTotal        *prometheus.CounterVec
	ItemsTotal         *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	SweepDuration      prometheus.Histogram
	LastSweepTimestamp prometheus.Gauge
}

// NewSweepMetrics creates and registers sweep metrics.
func NewSweepMetrics(namespace string) *SweepMetrics {
	m := &SweepMetrics{
		SweepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sweep",
				Name:      "runs_total",
				Help:      "Total number of sweep runs",
			},
			[]string{"status"}, // status: completed, aborted, skipped
		),
		ItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sweep",
				Name:      "items_total",
				Help:      "Total number of due items handled by the sweep",
			},
			[]string{"outcome"}, // outcome: scheduled, suppressed, failed
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sweep",
				Name:      "notifications_total",
				Help:      "Total number of notification attempts made by the sweep",
			},
			[]string{"status"}, // status: success, error
		),
		SweepDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sweep",
				Name:      "duration_seconds",
				Help:      "Duration of sweep runs",
				Buckets:   prometheus.DefBuckets,
			},
		),
		LastSweepTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sweep",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix timestamp of the last sweep run",
			},
		),
	}

	MustRegister(
		m.SweepsTotal,
		m.ItemsTotal,
		m.NotificationsTotal,
		m.SweepDuration,
		m.LastSweepTimestamp,
	)

	return m
}
