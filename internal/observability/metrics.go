package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/volleyball-feed/internal/platform/cache"
	"github.com/riskibarqy/volleyball-feed/internal/platform/resilience"
)

const metricsNamespace = "vbfeed"

// Metrics holds the Prometheus instruments for the feed service on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	feedLoads        *prometheus.CounterVec
	feedFailures     *prometheus.CounterVec
	skippedRecords   *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	circuitState     prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		feedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "feed_loads_total",
			Help:      "Feed reads by resource and the tier that served them.",
		}, []string{"resource", "source"}),
		feedFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "feed_failures_total",
			Help:      "Feed reads that fell back to an empty stale result.",
		}, []string{"resource"}),
		skippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "feed_skipped_records_total",
			Help:      "Match records dropped because a set score was malformed.",
		}, []string{"resource"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API attempts by resource and HTTP status.",
		}, []string{"resource", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API attempt latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"resource"}),
		circuitState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_circuit_state",
			Help:      "Upstream circuit breaker state: 0 closed, 1 half open, 2 open.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.feedLoads,
		m.feedFailures,
		m.skippedRecords,
		m.upstreamRequests,
		m.upstreamLatency,
		m.circuitState,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterCacheStats exposes in-process cache counters read from stats at scrape time.
func (m *Metrics) RegisterCacheStats(stats func() cache.Stats) error {
	if stats == nil {
		return nil
	}
	return m.registry.Register(&cacheCollector{
		stats:   stats,
		entries: prometheus.NewDesc(metricsNamespace+"_cache_entries", "Entries held by the in-process feed cache.", nil, nil),
		hits:    prometheus.NewDesc(metricsNamespace+"_cache_hits_total", "In-process feed cache hits.", nil, nil),
		misses:  prometheus.NewDesc(metricsNamespace+"_cache_misses_total", "In-process feed cache misses.", nil, nil),
		loads:   prometheus.NewDesc(metricsNamespace+"_cache_loads_total", "Loader invocations behind the in-process feed cache.", nil, nil),
	})
}

func (m *Metrics) ObserveFeedLoad(resource, source string) {
	m.feedLoads.WithLabelValues(resource, source).Inc()
}

func (m *Metrics) ObserveFeedFailure(resource string) {
	m.feedFailures.WithLabelValues(resource).Inc()
}

func (m *Metrics) ObserveSkippedRecords(resource string, count int) {
	if count <= 0 {
		return
	}
	m.skippedRecords.WithLabelValues(resource).Add(float64(count))
}

// ObserveUpstreamRequest records one upstream attempt. A zero status means no response was received.
func (m *Metrics) ObserveUpstreamRequest(resource string, statusCode int, elapsed time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.upstreamRequests.WithLabelValues(resource, status).Inc()
	m.upstreamLatency.WithLabelValues(resource).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCircuitState(state resilience.CircuitState) {
	switch state {
	case resilience.CircuitStateOpen:
		m.circuitState.Set(2)
	case resilience.CircuitStateHalfOpen:
		m.circuitState.Set(1)
	default:
		m.circuitState.Set(0)
	}
}

func (m *Metrics) ObserveHTTPRequest(method, route string, statusCode int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

type cacheCollector struct {
	stats   func() cache.Stats
	entries *prometheus.Desc
	hits    *prometheus.Desc
	misses  *prometheus.Desc
	loads   *prometheus.Desc
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.hits
	ch <- c.misses
	ch <- c.loads
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Entries))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.loads, prometheus.CounterValue, float64(s.Loads))
}
