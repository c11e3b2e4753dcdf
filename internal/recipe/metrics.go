package recipe

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Attempt outcomes recorded by Metrics.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid"
	OutcomeInfraError = "infra_error"
)

// Metrics counts generation activity. A nil *Metrics records nothing.
type Metrics struct {
	attempts  *prometheus.CounterVec
	fallbacks prometheus.Counter
	images    *prometheus.CounterVec
	duration  prometheus.Histogram
	gatherer  prometheus.Gatherer
}

// NewMetrics registers the generation metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pantry",
				Subsystem: "recipes",
				Name:      "attempts_total",
				Help:      "Generation attempts by outcome",
			},
			[]string{"outcome"},
		),
		fallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "pantry",
				Subsystem: "recipes",
				Name:      "fallbacks_total",
				Help:      "Batches served from built-in recipes after every attempt failed validation",
			},
		),
		images: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pantry",
				Subsystem: "recipes",
				Name:      "images_total",
				Help:      "Recipe image generations by result",
			},
			[]string{"result"},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "pantry",
				Subsystem: "recipes",
				Name:      "generation_duration_seconds",
				Help:      "Time to produce a recipe batch",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
		),
	}
}

func (m *Metrics) attempt(outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) image(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.images.WithLabelValues(result).Inc()
}

func (m *Metrics) observe(seconds float64) {
	if m == nil {
		return
	}
	m.duration.Observe(seconds)
}

// Gatherer exposes the registry backing m.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
