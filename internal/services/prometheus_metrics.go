package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionMutations *prometheus.CounterVec
	dashboardDuration    prometheus.Histogram
	exportsTotal         *prometheus.CounterVec
	authEventsTotal      *prometheus.CounterVec
	uploadsStoredTotal   *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		transactionMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_mutations_total",
				Help: "Total number of transaction create, update and delete operations",
			},
			[]string{"operation", "type"},
		),
		dashboardDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dashboard_request_duration_milliseconds",
				Help:    "Dashboard aggregation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exports_total",
				Help: "Total number of export requests by format",
			},
			[]string{"format", "status"},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event", "status"},
		),
		uploadsStoredTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uploads_stored_total",
				Help: "Total number of files stored by kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *PrometheusMetrics) RecordTransactionMutation(operation, transactionType string) {
	m.transactionMutations.WithLabelValues(operation, transactionType).Inc()
}

func (m *PrometheusMetrics) RecordDashboardRequest(duration time.Duration) {
	m.dashboardDuration.Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordExport(format, status string) {
	m.exportsTotal.WithLabelValues(format, status).Inc()
}

func (m *PrometheusMetrics) RecordAuthEvent(event, status string) {
	m.authEventsTotal.WithLabelValues(event, status).Inc()
}

func (m *PrometheusMetrics) RecordUploadStored(kind string) {
	m.uploadsStoredTotal.WithLabelValues(kind).Inc()
}
