// Package metrics holds the Prometheus instruments for the calculator and settings screens.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless configured otherwise.
const DefaultNamespace = "tipcalc"

// Outcome labels.
const (
	OutcomeApplied = "applied"
	OutcomeFloor   = "floor"
	OutcomeNoop    = "noop"
	OutcomeResumed = "resumed"
	OutcomeFresh   = "fresh"
	OutcomeOK      = "ok"
	OutcomeError   = "error"
)

// Metrics counts clamps, rounding gestures, session starts and preference flushes.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	clamps        *prometheus.CounterVec
	gestures      *prometheus.CounterVec
	sessionStarts *prometheus.CounterVec
	flushes       *prometheus.CounterVec
}

// New constructs the instruments and registers them against reg.
// A nil reg uses prometheus.DefaultRegisterer; an empty namespace uses DefaultNamespace.
// Instruments already registered on reg by an earlier call are reused.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Metrics{
		clamps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "preferences",
				Name:      "clamps_total",
				Help:      "Total number of setting writes adjusted to keep the tip bounds consistent.",
			},
			[]string{"field"},
		),
		gestures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "calculator",
				Name:      "rounding_gestures_total",
				Help:      "Total number of rounding gestures by target and outcome.",
			},
			[]string{"target", "outcome"},
		),
		sessionStarts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "calculator",
				Name:      "session_starts_total",
				Help:      "Total number of calculator sessions started, resumed or fresh.",
			},
			[]string{"outcome"},
		),
		flushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "preferences",
				Name:      "flushes_total",
				Help:      "Total number of preference flushes by result.",
			},
			[]string{"outcome"},
		),
	}
	for _, vec := range []**prometheus.CounterVec{&m.clamps, &m.gestures, &m.sessionStarts, &m.flushes} {
		registered, err := register(reg, *vec)
		if err != nil {
			return nil, err
		}
		*vec = registered
	}
	return m, nil
}

func register(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := reg.Register(vec)
	if err == nil {
		return vec, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("failed to register metrics: %w", err)
}

// ObserveClamp increments the clamp counter for the named field.
func (m *Metrics) ObserveClamp(field string) {
	if m == nil {
		return
	}
	m.clamps.WithLabelValues(field).Inc()
}

// ObserveGesture increments the rounding gesture counter.
func (m *Metrics) ObserveGesture(target, outcome string) {
	if m == nil {
		return
	}
	m.gestures.WithLabelValues(target, outcome).Inc()
}

// ObserveSessionStart increments the session start counter.
func (m *Metrics) ObserveSessionStart(resumed bool) {
	if m == nil {
		return
	}
	outcome := OutcomeFresh
	if resumed {
		outcome = OutcomeResumed
	}
	m.sessionStarts.WithLabelValues(outcome).Inc()
}

// ObserveFlush increments the flush counter with the result of err.
func (m *Metrics) ObserveFlush(err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.flushes.WithLabelValues(outcome).Inc()
}

// ClampCounter exposes the clamp counter for testing and diagnostics.
func (m *Metrics) ClampCounter(field string) prometheus.Counter {
	return m.clamps.WithLabelValues(field)
}

// GestureCounter exposes the rounding gesture counter for testing and diagnostics.
func (m *Metrics) GestureCounter(target, outcome string) prometheus.Counter {
	return m.gestures.WithLabelValues(target, outcome)
}

// SessionStartCounter exposes the session start counter for testing and diagnostics.
func (m *Metrics) SessionStartCounter(outcome string) prometheus.Counter {
	return m.sessionStarts.WithLabelValues(outcome)
}

// FlushCounter exposes the flush counter for testing and diagnostics.
func (m *Metrics) FlushCounter(outcome string) prometheus.Counter {
	return m.flushes.WithLabelValues(outcome)
}
