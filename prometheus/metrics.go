// Package prometheus exposes texdex metrics using the Prometheus client
// library, along with decorators that record them.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every texdex metric.
const Namespace = "texdex"

// Metrics holds all texdex Prometheus metrics and the registry they are
// registered with.
type Metrics struct {
	registry *prometheus.Registry

	// Ingestion metrics
	IngestRuns     *prometheus.CounterVec
	IngestDuration prometheus.Histogram
	RecordsAdded   *prometheus.CounterVec
	Candidates     *prometheus.CounterVec
	SourceFailures *prometheus.CounterVec
	IndexedEntries prometheus.Gauge

	// Query metrics
	Searches       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	SearchHits     prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates a registry with the Go and process collectors and
// registers all texdex metrics with it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	m := &Metrics{registry: reg}

	m.initIngestMetrics(factory)
	m.initSearchMetrics(factory)
	m.initHTTPMetrics(factory)

	return m
}

func (m *Metrics) initIngestMetrics(factory promauto.Factory) {
	m.IngestRuns = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "ingest_runs_total",
		Help:      "Total ingestion runs by outcome",
	}, []string{"outcome"})

	m.IngestDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "ingest_duration_seconds",
		Help:      "Duration of an ingestion run",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	m.RecordsAdded = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "records_added_total",
		Help:      "Records newly created by ingestion",
	}, []string{"source"})

	m.Candidates = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "candidates_total",
		Help:      "Extracted candidates by source and result",
	}, []string{"source", "result"})

	m.SourceFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "source_failures_total",
		Help:      "Sources that could not be fetched or parsed",
	}, []string{"source", "error_code"})

	m.IndexedEntries = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "indexed_entries",
		Help:      "Number of records in the store at the last status check",
	})
}

func (m *Metrics) initSearchMetrics(factory promauto.Factory) {
	m.Searches = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "searches_total",
		Help:      "Queries answered by kind (list or search) and outcome",
	}, []string{"kind", "outcome"})

	m.SearchDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "search_duration_seconds",
		Help:      "Time to answer a query",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})

	m.SearchHits = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "search_hits",
		Help:      "Records returned per query",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	})
}

func (m *Metrics) initHTTPMetrics(factory promauto.Factory) {
	m.HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route, and status code",
	}, []string{"method", "route", "status"})

	m.HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
}

// Registry returns the registry holding the texdex metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}
