// Package metrics counts the client's backend traffic with Prometheus
// collectors on a private registry. The CLI has no scrape endpoint, so the
// registry is written to a text file on exit.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the request metrics.
type Collector struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	inFlight       prometheus.Gauge
	duration       *prometheus.HistogramVec
	sessionExpired prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripdesk_api_requests_total",
			Help: "Backend requests by method and status code.",
		}, []string{"code", "method"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tripdesk_api_requests_in_flight",
			Help: "Backend requests currently in flight.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tripdesk_api_request_duration_seconds",
			Help:    "Backend request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		sessionExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tripdesk_session_expired_total",
			Help: "Times the backend rejected the session token.",
		}),
	}
	c.registry.MustRegister(c.requests, c.inFlight, c.duration, c.sessionExpired)
	return c
}

// InstrumentRoundTripper wraps next so every request is counted and timed.
func (c *Collector) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(c.inFlight,
		promhttp.InstrumentRoundTripperCounter(c.requests,
			promhttp.InstrumentRoundTripperDuration(c.duration, next),
		),
	)
}

// RecordSessionExpired counts a rejected session.
func (c *Collector) RecordSessionExpired() {
	c.sessionExpired.Inc()
}

// Gatherer exposes the registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteFile writes the registry in the text exposition format.
func (c *Collector) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
