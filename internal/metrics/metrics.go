// Package metrics provides Prometheus instrumentation for subgraph requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	registry *prometheus.Registry

	SubgraphRequests *prometheus.CounterVec
	SubgraphLatency  *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
}

// New creates and registers all collectors on a fresh registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "info_scope"
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SubgraphRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subgraph_requests_total",
			Help:      "Subgraph GraphQL requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		SubgraphLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "subgraph_request_duration_seconds",
			Help:      "Subgraph GraphQL request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(m.SubgraphRequests, m.SubgraphLatency, m.HTTPRequests)
	return m
}

// ObserveRequest records one subgraph request.
func (m *Metrics) ObserveRequest(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	m.SubgraphRequests.WithLabelValues(operation, outcome).Inc()
	m.SubgraphLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
