// Package metrics collects Prometheus metrics for a single run of the
// program. A console run is too short lived to be scraped, so the registry is
// written to a text file on exit in the format understood by the node
// exporter textfile collector.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "artist_explorer"

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	Registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	CoversShown prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Outgoing HTTP requests by client, method and status code.",
		}, []string{"client", "code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of outgoing HTTP requests by client.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"client", "code", "method"}),
		CoversShown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "covers_shown_total",
			Help:      "Album covers handed to the previewer.",
		}),
	}
	m.Registry.MustRegister(m.requests, m.duration, m.CoversShown)
	return m
}

// InstrumentTransport wraps next so every request is counted and timed under
// the given client label. A nil next means http.DefaultTransport.
func (m *Metrics) InstrumentTransport(client string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	labels := prometheus.Labels{"client": client}
	return promhttp.InstrumentRoundTripperCounter(m.requests.MustCurryWith(labels),
		promhttp.InstrumentRoundTripperDuration(m.duration.MustCurryWith(labels), next))
}

// WriteFile dumps the registry to path. The file is written atomically.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
