// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lifelens"

// Proxy outcomes recorded on ProxyRequests.
const (
	ProxyOK          = "ok"
	ProxyFailed      = "failed"
	ProxyCircuitOpen = "circuit_open"
)

// Collector owns a private registry so that several collectors can coexist
// in one process, as they do in tests.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	TextsAnalyzed   prometheus.Counter
	ReportsComposed prometheus.Counter
	ProxyRequests   *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	c.HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	c.TextsAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "texts_analyzed_total",
		Help:      "Total number of texts scored by the sentiment analyzer",
	})
	c.ReportsComposed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_composed_total",
		Help:      "Total number of reports composed",
	})
	c.ProxyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proxy_requests_total",
			Help:      "Location sentiment proxy requests by outcome",
		},
		[]string{"outcome"},
	)

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		c.HTTPRequests,
		c.HTTPDuration,
		c.TextsAnalyzed,
		c.ReportsComposed,
		c.ProxyRequests,
	)
	return c
}

// Registry returns the registry the collectors are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
