// Package metrics exposes Prometheus metrics for HTTP traffic, inserts,
// report queries and the database pool.
package metrics

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "inventory"

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

// Metrics holds the collectors on a dedicated registry, so tests can build
// as many instances as they need.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	InsertsTotal        *prometheus.CounterVec
	ReportDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		InsertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "inserts_total",
				Help:      "Total number of insert attempts by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "report_duration_seconds",
				Help:      "Duration of report queries in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report", "outcome"},
		),
	}
}

// RegisterPool exports connection pool statistics as gauges. stat is called
// on every scrape.
func (m *Metrics) RegisterPool(stat func() *pgxpool.Stat) {
	gauge := func(name, help string, value func(s *pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "db_pool",
				Name:      name,
				Help:      help,
			},
			func() float64 { return value(stat()) },
		)
	}

	m.Registry.MustRegister(
		gauge("total_conns", "Connections currently in the pool",
			func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("acquired_conns", "Connections currently checked out",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
		gauge("idle_conns", "Idle connections in the pool",
			func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("max_conns", "Maximum size of the pool",
			func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
		gauge("acquire_count", "Cumulative successful acquires",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquireCount()) }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordInsert counts one insert attempt.
func (m *Metrics) RecordInsert(entity, outcome string) {
	if m == nil {
		return
	}
	m.InsertsTotal.WithLabelValues(entity, outcome).Inc()
}

// TrackReport returns a function that records the duration of a report
// query started at start.
func (m *Metrics) TrackReport(report string, start time.Time) func(outcome string) {
	return func(outcome string) {
		if m == nil {
			return
		}
		m.ReportDuration.WithLabelValues(report, outcome).Observe(time.Since(start).Seconds())
	}
}
