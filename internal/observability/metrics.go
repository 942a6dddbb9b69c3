package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	errorCount     *prometheus.CounterVec
	fetchCount     *prometheus.CounterVec
	fetchLatency   prometheus.Histogram
	staleDiscards  prometheus.Counter
	activeViews    prometheus.Gauge
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests served, by route, method and status.",
		}, []string{"path", "method", "status"}),
		requestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_errors_total",
			Help: "HTTP errors rendered, by route, method and error code.",
		}, []string{"path", "method", "code"}),
		fetchCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_ticket_fetches_total",
			Help: "Ticket page fetches, by data source and outcome.",
		}, []string{"source", "outcome"}),
		fetchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dashboard_ticket_fetch_duration_seconds",
			Help:    "Latency of ticket page fetches.",
			Buckets: prometheus.DefBuckets,
		}),
		staleDiscards: factory.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_ticket_fetch_stale_discarded_total",
			Help: "Fetch results dropped because a newer fetch was issued.",
		}),
		activeViews: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_active_views",
			Help: "Mounted ticket views.",
		}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(path, method, code).Inc()
}

// RecordFetch records one ticket page fetch.
func (m *Metrics) RecordFetch(source, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.fetchCount.WithLabelValues(source, outcome).Inc()
	m.fetchLatency.Observe(duration.Seconds())
}

// RecordStaleDiscard counts a superseded fetch result.
func (m *Metrics) RecordStaleDiscard() {
	if m == nil {
		return
	}
	m.staleDiscards.Inc()
}

// SetActiveViews reports the number of mounted views.
func (m *Metrics) SetActiveViews(n int) {
	if m == nil {
		return
	}
	m.activeViews.Set(float64(n))
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
