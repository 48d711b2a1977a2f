// Package metrics holds the Prometheus collectors exported by hpportal.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hpportal"

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	CacheRequests   *prometheus.CounterVec
	CacheRefreshes  *prometheus.CounterVec
	CacheSize       prometheus.Gauge
	UpstreamLatency prometheus.Histogram

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Character cache lookups by result (hit, miss).",
		}, []string{"result"}),
		CacheRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_refreshes_total",
			Help:      "Upstream refreshes of the character cache by result (success, error).",
		}, []string{"result"}),
		CacheSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_characters",
			Help:      "Number of characters held by the cache.",
		}),
		UpstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_duration_seconds",
			Help:      "Time spent fetching the full character collection upstream.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.CacheRequests,
		m.CacheRefreshes,
		m.CacheSize,
		m.UpstreamLatency,
		m.HTTPRequests,
		m.HTTPRequestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheRequests.WithLabelValues("miss").Inc()
}

// RefreshDone records one upstream refresh attempt.
func (m *Metrics) RefreshDone(elapsed time.Duration, size int, err error) {
	if m == nil {
		return
	}
	m.UpstreamLatency.Observe(elapsed.Seconds())
	if err != nil {
		m.CacheRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.CacheRefreshes.WithLabelValues("success").Inc()
	m.CacheSize.Set(float64(size))
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
