package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/config"
	"github.com/TobiSchelling/lifelens/internal/metrics"
)

const (
	defaultRadius    = "1000"
	maxUpstreamBytes = 5 * 1024 * 1024
)

// locationProxy forwards geo-radius queries to the upstream sentiment
// service and relays its JSON unchanged.
type locationProxy struct {
	upstream string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	metrics  *metrics.Collector
	logger   *zap.Logger
}

func newLocationProxy(cfg config.Proxy, m *metrics.Collector, logger *zap.Logger) *locationProxy {
	p := &locationProxy{
		upstream: strings.TrimRight(cfg.UpstreamURL, "/"),
		client:   &http.Client{Timeout: cfg.Timeout},
		metrics:  m,
		logger:   logger,
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "location-sentiment",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return p
}

func (p *locationProxy) handleNear(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	radius := q.Get("radius")
	if radius == "" {
		radius = defaultRadius
	}
	params := url.Values{}
	params.Set("lat", q.Get("lat"))
	params.Set("lng", q.Get("lng"))
	params.Set("radius", radius)
	target := p.upstream + "/sentiments/near?" + params.Encode()

	body, err := p.breaker.Execute(func() (any, error) {
		return p.fetch(r, target)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		p.metrics.ProxyRequests.WithLabelValues(metrics.ProxyCircuitOpen).Inc()
		p.logger.Warn("upstream circuit open", zap.String("target", target))
		writeError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
		return
	case err != nil:
		p.metrics.ProxyRequests.WithLabelValues(metrics.ProxyFailed).Inc()
		p.logger.Error("fetching nearby sentiments", zap.String("target", target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch data")
		return
	}

	p.metrics.ProxyRequests.WithLabelValues(metrics.ProxyOK).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body.([]byte))
}

func (p *locationProxy) fetch(r *http.Request, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("upstream returned HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBytes))
	if err != nil {
		return nil, fmt.Errorf("reading upstream response: %w", err)
	}
	if !json.Valid(body) {
		return nil, errors.New("upstream response is not JSON")
	}
	return body, nil
}
