package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m, err := New(prometheus.NewRegistry(), "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	m.ObserveClamp("minimumTipPercentage")
	m.ObserveClamp("minimumTipPercentage")
	m.ObserveGesture("tip", OutcomeFloor)
	m.ObserveSessionStart(true)
	m.ObserveSessionStart(false)
	m.ObserveSessionStart(false)
	m.ObserveFlush(nil)
	m.ObserveFlush(errors.New("disk full"))

	tests := []struct {
		name    string
		counter prometheus.Counter
		want    float64
	}{
		{"clamps", m.ClampCounter("minimumTipPercentage"), 2},
		{"other field untouched", m.ClampCounter("maximumTipPercentage"), 0},
		{"gesture", m.GestureCounter("tip", OutcomeFloor), 1},
		{"resumed", m.SessionStartCounter(OutcomeResumed), 1},
		{"fresh", m.SessionStartCounter(OutcomeFresh), 2},
		{"flush ok", m.FlushCounter(OutcomeOK), 1},
		{"flush error", m.FlushCounter(OutcomeError), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := testutil.ToFloat64(tt.counter); v != tt.want {
				t.Errorf("expected %v, got %v", tt.want, v)
			}
		})
	}
}

func TestMetrics_Namespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg, "custom")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m.ObserveFlush(nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) != 1 || families[0].GetName() != "custom_preferences_flushes_total" {
		t.Fatalf("unexpected families: %v", families)
	}
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg, "")
	if err != nil {
		t.Fatalf("first New failed: %v", err)
	}
	second, err := New(reg, "")
	if err != nil {
		t.Fatalf("second New failed: %v", err)
	}

	first.ObserveFlush(nil)
	second.ObserveFlush(nil)
	if v := testutil.ToFloat64(first.FlushCounter(OutcomeOK)); v != 2 {
		t.Errorf("expected shared counter at 2, got %v", v)
	}
}

func TestMetrics_RegisterConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Subsystem: "preferences",
			Name:      "flushes_total",
			Help:      "Total number of preference flushes by result.",
		},
		[]string{"result"},
	))

	if _, err := New(reg, ""); err == nil {
		t.Fatal("expected error for conflicting collector")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveClamp("x")
	m.ObserveGesture("tip", OutcomeApplied)
	m.ObserveSessionStart(true)
	m.ObserveFlush(nil)
}
