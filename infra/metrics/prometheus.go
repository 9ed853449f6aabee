// Package metrics exposes conversion metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/amirasaad/fxconvert/pkg/money"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the conversion collectors and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the conversion collectors in a fresh registry under
// namespace. Go runtime and process collectors are included.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	// define the buckets for timers
	timerBuckets := prometheus.LinearBuckets(0.05, 0.05, 20)
	timerBuckets = append(timerBuckets, []float64{1.5, 2.0, 3.0, 5.0, 10.0}...)

	m := &Metrics{
		Registry: reg,
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Number of conversion attempts by currency pair and outcome.",
		}, []string{"from", "to", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Seconds spent on each conversion, including the rate request.",
			Buckets:   timerBuckets,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.conversions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveConversion records one conversion attempt.
func (m *Metrics) ObserveConversion(from, to money.Code, outcome string, elapsed time.Duration) {
	m.conversions.WithLabelValues(string(from), string(to), outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
