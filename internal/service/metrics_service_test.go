package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeMetrics(t *testing.T, m *MetricsService) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetricsServiceCacheCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordCacheOperation(true, 2*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.ObserveCacheWrite(3 * time.Millisecond)

	body := scrapeMetrics(t, m)
	assert.Contains(t, body, "cache_hits_total 2")
	assert.Contains(t, body, "cache_misses_total 1")
	assert.Contains(t, body, "cache_hit_ratio 0.6666666666666666")
	assert.Contains(t, body, "cache_latency_seconds_count 3")
	assert.Contains(t, body, "cache_write_seconds_count 1")
}

func TestMetricsServiceNilReceiver(t *testing.T) {
	var m *MetricsService

	m.RecordCacheOperation(true, time.Millisecond)
	m.ObserveCacheWrite(time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
