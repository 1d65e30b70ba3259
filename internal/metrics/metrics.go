// Package metrics exposes Prometheus counters for wallet activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry      *prometheus.Registry
	registrations prometheus.Counter
	submissions   *prometheus.CounterVec
	points        *prometheus.CounterVec
	rejections    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "plasticwallet",
			Name:      "registrations_total",
			Help:      "Successful registration form submissions.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plasticwallet",
			Name:      "items_submitted_total",
			Help:      "Waste items stored, by category.",
		}, []string{"category"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plasticwallet",
			Name:      "points_awarded_total",
			Help:      "Points awarded, by category.",
		}, []string{"category"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plasticwallet",
			Name:      "submissions_rejected_total",
			Help:      "Form submissions rejected by validation, by form.",
		}, []string{"form"}),
	}
	reg.MustRegister(
		m.registrations, m.submissions, m.points, m.rejections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registered counts a successful registration.
func (m *Metrics) Registered() {
	if m == nil {
		return
	}
	m.registrations.Inc()
}

// Submitted counts a stored item and its points.
func (m *Metrics) Submitted(category string, points int) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(category).Inc()
	m.points.WithLabelValues(category).Add(float64(points))
}

// Rejected counts a validation failure on the named form.
func (m *Metrics) Rejected(form string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(form).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
