// Package telemetry exports signal bus activity as Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/intes/pkg/signal"
)

const namespace = "intes"

// Metrics counts signal traffic and tracks the attached accessibility
// tree. It implements signal.Observer.
//
// Metrics registers into its own registry, so several windows in one
// process (as in tests) never collide.
type Metrics struct {
	registry    *prometheus.Registry
	posted      *prometheus.CounterVec
	delivered   *prometheus.CounterVec
	unhandled   *prometheus.CounterVec
	descriptors prometheus.Gauge
}

// New creates a Metrics with a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		posted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_posted_total",
			Help:      "Synthetic signals posted to a bus.",
		}, []string{"signal"}),
		delivered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_delivered_total",
			Help:      "Handler invocations made by the bus.",
		}, []string{"signal"}),
		unhandled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_unhandled_total",
			Help:      "Posts that no subscriber consumed.",
		}, []string{"signal"}),
		descriptors: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "a11y_descriptors",
			Help:      "Descriptors in the attached accessibility tree.",
		}),
	}
}

// SignalPosted implements signal.Observer.
func (m *Metrics) SignalPosted(code signal.Code, delivered int, handled bool) {
	if m == nil {
		return
	}
	label := code.String()
	m.posted.WithLabelValues(label).Inc()
	m.delivered.WithLabelValues(label).Add(float64(delivered))
	if !handled {
		m.unhandled.WithLabelValues(label).Inc()
	}
}

// SetDescriptors records the size of the attached accessibility tree.
func (m *Metrics) SetDescriptors(n int) {
	if m == nil {
		return
	}
	m.descriptors.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var _ signal.Observer = (*Metrics)(nil)
