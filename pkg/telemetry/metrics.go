// Package telemetry exposes Prometheus metrics for the UI runtime.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records dispatch, navigation and effect activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	eventsDispatched   *prometheus.CounterVec
	handlerDepth       prometheus.Gauge
	transitions        *prometheus.CounterVec
	transitionDuration *prometheus.HistogramVec
	effectsActive      prometheus.Gauge
	screenActivations  *prometheus.CounterVec
	contractViolations prometheus.Counter
}

// New creates metrics bound to a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		eventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vista",
			Name:      "events_dispatched_total",
			Help:      "Input events dispatched to the active event handler, by kind.",
		}, []string{"kind"}),
		handlerDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vista",
			Name:      "handler_stack_depth",
			Help:      "Number of nested active event handlers.",
		}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vista",
			Name:      "transitions_total",
			Help:      "Screen transitions played, by kind.",
		}, []string{"kind"}),
		transitionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vista",
			Name:      "transition_duration_seconds",
			Help:      "Wall-clock duration of screen transitions.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1, 2},
		}, []string{"kind"}),
		effectsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vista",
			Name:      "effects_active",
			Help:      "Effects currently scheduled in the most recently drawn effect list.",
		}),
		screenActivations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vista",
			Name:      "screen_activations_total",
			Help:      "Screen activations, by screen name.",
		}, []string{"screen"}),
		contractViolations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vista",
			Name:      "contract_violations_total",
			Help:      "Programmer contract violations rejected at runtime.",
		}),
	}
}

// Registry returns the registry the metrics are bound to.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// EventDispatched counts one dispatched event of the given kind.
func (m *Metrics) EventDispatched(kind string) {
	if m == nil {
		return
	}
	m.eventsDispatched.WithLabelValues(kind).Inc()
}

// SetHandlerDepth records the number of nested active handlers.
func (m *Metrics) SetHandlerDepth(depth int) {
	if m == nil {
		return
	}
	m.handlerDepth.Set(float64(depth))
}

// TransitionPlayed records a finished transition.
func (m *Metrics) TransitionPlayed(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind).Inc()
	m.transitionDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// SetEffectsActive records the size of an effect list after drawing.
func (m *Metrics) SetEffectsActive(n int) {
	if m == nil {
		return
	}
	m.effectsActive.Set(float64(n))
}

// ScreenActivated counts an activation of the named screen.
func (m *Metrics) ScreenActivated(screen string) {
	if m == nil {
		return
	}
	m.screenActivations.WithLabelValues(screen).Inc()
}

// ContractViolation counts a rejected programmer contract violation.
func (m *Metrics) ContractViolation() {
	if m == nil {
		return
	}
	m.contractViolations.Inc()
}
