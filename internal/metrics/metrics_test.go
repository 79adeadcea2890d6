package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := New(), New()

	a.TextsAnalyzed.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.TextsAnalyzed))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TextsAnalyzed))
}

func TestObserveRequest(t *testing.T) {
	c := New()

	c.ObserveRequest(http.MethodGet, "/health", 200, 5*time.Millisecond)
	c.ObserveRequest(http.MethodGet, "/health", 200, 7*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/health", "200")))
}

func TestHandler(t *testing.T) {
	c := New()
	c.ProxyRequests.WithLabelValues(ProxyFailed).Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `lifelens_proxy_requests_total{outcome="failed"} 1`)
}
