package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/volleyball-feed/internal/platform/cache"
	"github.com/riskibarqy/volleyball-feed/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_FeedCounters(t *testing.T) {
	m := NewMetrics()

	m.ObserveFeedLoad("live", "upstream")
	m.ObserveFeedLoad("live", "upstream")
	m.ObserveFeedLoad("live", "memory")
	m.ObserveFeedFailure("results")
	m.ObserveSkippedRecords("schedule", 3)
	m.ObserveSkippedRecords("schedule", 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.feedLoads.WithLabelValues("live", "upstream")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.feedLoads.WithLabelValues("live", "memory")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.feedFailures.WithLabelValues("results")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.skippedRecords.WithLabelValues("schedule")))
}

func TestMetrics_UpstreamAndCircuit(t *testing.T) {
	m := NewMetrics()

	m.ObserveUpstreamRequest("results", http.StatusOK, 120*time.Millisecond)
	m.ObserveUpstreamRequest("results", 0, time.Second)
	m.ObserveCircuitState(resilience.CircuitStateOpen)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamRequests.WithLabelValues("results", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamRequests.WithLabelValues("results", "error")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.circuitState))

	m.ObserveCircuitState(resilience.CircuitStateHalfOpen)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.circuitState))
	m.ObserveCircuitState(resilience.CircuitStateClosed)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.circuitState))
}

func TestMetrics_HandlerExposesCacheStats(t *testing.T) {
	m := NewMetrics()
	require.NoError(t, m.RegisterCacheStats(func() cache.Stats {
		return cache.Stats{Entries: 4, Hits: 10, Misses: 2, Loads: 3}
	}))
	m.ObserveHTTPRequest(http.MethodGet, "/v1/live", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, "vbfeed_cache_entries 4"), "missing cache entries gauge")
	assert.True(t, strings.Contains(text, "vbfeed_cache_hits_total 10"), "missing cache hits counter")
	assert.True(t, strings.Contains(text, `vbfeed_http_requests_total{method="GET",route="/v1/live",status="200"} 1`), "missing http counter")
}
