package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects render instrumentation for the HTTP adapter.
type Metrics struct {
	renders  *prometheus.CounterVec
	passes   prometheus.Histogram
	duration prometheus.Histogram
}

// NewMetrics creates and registers the render metrics on the given
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tablerender",
			Name:      "renders_total",
			Help:      "Render requests by outcome.",
		}, []string{"outcome"}),
		passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tablerender",
			Name:      "resolution_passes",
			Help:      "Evaluation passes used per render.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tablerender",
			Name:      "render_duration_seconds",
			Help:      "Wall-clock render duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.renders, m.passes, m.duration)
	return m
}

func (m *Metrics) observe(outcome string, passes int, seconds float64) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(outcome).Inc()
	if passes > 0 {
		m.passes.Observe(float64(passes))
	}
	m.duration.Observe(seconds)
}
