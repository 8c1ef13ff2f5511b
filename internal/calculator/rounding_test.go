package calculator

import (
	"math"
	"testing"

	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.MustParse(s)
}

func f(t *testing.T, v decimal.Decimal) float64 {
	t.Helper()
	out, ok := v.Float64()
	if !ok {
		t.Fatalf("decimal %v does not fit float64", v)
	}
	return out
}

func TestRound(t *testing.T) {
	tests := []struct {
		name        string
		target      Target
		input       RoundingInput
		wantApplied bool
		wantFloor   bool
		wantRounded float64
		wantTip     float64
		wantPct     float64
	}{
		{
			name:   "tip rounds up to the next half",
			target: TipTarget,
			input: RoundingInput{
				BillTotal:      d("19.37"),
				TipPercentage:  d("0.18"),
				RoundToNearest: d("0.50"),
				Rule:           models.RoundUp,
			},
			// oldTip = 3.4866 → 6.9732 halves → 7 halves
			wantApplied: true,
			wantRounded: 3.5,
			wantTip:     3.5,
			wantPct:     0.1807,
		},
		{
			name:   "tip rounds to nearest half",
			target: TipTarget,
			input: RoundingInput{
				BillTotal:      d("19.37"),
				TipPercentage:  d("0.18"),
				RoundToNearest: d("0.50"),
				Rule:           models.RoundToNearestAwayFromZero,
			},
			wantApplied: true,
			wantRounded: 3.5,
			wantTip:     3.5,
			wantPct:     0.1807,
		},
		{
			name:   "tip nearest ties away from zero",
			target: TipTarget,
			input: RoundingInput{
				BillTotal:      d("10.00"),
				TipPercentage:  d("0.125"),
				RoundToNearest: d("0.50"),
				Rule:           models.RoundToNearestAwayFromZero,
			},
			// oldTip = 1.25 → 2.5 halves → 3 halves
			wantApplied: true,
			wantRounded: 1.5,
			wantTip:     1.5,
			wantPct:     0.15,
		},
		{
			name:   "tip that would round to zero falls back to round up",
			target: TipTarget,
			input: RoundingInput{
				BillTotal:      d("20.00"),
				TipPercentage:  d("0.01"),
				RoundToNearest: d("0.50"),
				Rule:           models.RoundToNearestAwayFromZero,
			},
			// oldTip = 0.20 → 0.4 halves → nearest 0, up 1
			wantApplied: true,
			wantFloor:   true,
			wantRounded: 0.5,
			wantTip:     0.5,
			wantPct:     0.025,
		},
		{
			name:   "total that would drop the tip falls back to round up",
			target: TotalTarget,
			input: RoundingInput{
				BillTotal:      d("10.00"),
				TipPercentage:  d("0.01"),
				RoundToNearest: d("1.00"),
				Rule:           models.RoundToNearestAwayFromZero,
			},
			wantApplied: true,
			wantFloor:   true,
			wantRounded: 11.0,
			wantTip:     1.0,
			wantPct:     0.1,
		},
		{
			name:   "total rounds up to the next dollar",
			target: TotalTarget,
			input: RoundingInput{
				BillTotal:      d("42.10"),
				TipPercentage:  d("0.20"),
				RoundToNearest: d("1"),
				Rule:           models.RoundUp,
			},
			// total = 50.52 → 51
			wantApplied: true,
			wantRounded: 51.0,
			wantTip:     8.9,
			wantPct:     0.2114,
		},
		{
			name:   "total rounds to nearest dollar",
			target: TotalTarget,
			input: RoundingInput{
				BillTotal:      d("42.10"),
				TipPercentage:  d("0.20"),
				RoundToNearest: d("1"),
				Rule:           models.RoundToNearestAwayFromZero,
			},
			// total = 50.52 → 51
			wantApplied: true,
			wantRounded: 51.0,
			wantTip:     8.9,
			wantPct:     0.2114,
		},
		{
			name:   "result is not clamped into the slider bounds",
			target: TipTarget,
			input: RoundingInput{
				BillTotal:      d("3.00"),
				TipPercentage:  d("0.25"),
				RoundToNearest: d("1"),
				Rule:           models.RoundUp,
			},
			// oldTip = 0.75 → 1.00, a 33% tip
			wantApplied: true,
			wantRounded: 1.0,
			wantTip:     1.0,
			wantPct:     0.3333,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.target, tt.input)
			if got.Applied != tt.wantApplied {
				t.Fatalf("Applied = %v, want %v", got.Applied, tt.wantApplied)
			}
			if got.FloorApplied != tt.wantFloor {
				t.Errorf("FloorApplied = %v, want %v", got.FloorApplied, tt.wantFloor)
			}
			if v := f(t, got.Rounded); math.Abs(v-tt.wantRounded) > 0.0001 {
				t.Errorf("Rounded = %v, want %v", v, tt.wantRounded)
			}
			if v := f(t, got.TipAmount); math.Abs(v-tt.wantTip) > 0.0001 {
				t.Errorf("TipAmount = %v, want %v", v, tt.wantTip)
			}
			if v := f(t, got.TipPercentage); math.Abs(v-tt.wantPct) > 0.0001 {
				t.Errorf("TipPercentage = %v, want %v", v, tt.wantPct)
			}
		})
	}
}

func TestRound_NoOp(t *testing.T) {
	base := RoundingInput{
		BillTotal:      d("19.37"),
		TipPercentage:  d("0.18"),
		RoundToNearest: d("0.50"),
		Rule:           models.RoundUp,
	}

	tests := []struct {
		name   string
		target Target
		mutate func(in *RoundingInput)
	}{
		{"zero increment disables rounding", TipTarget, func(in *RoundingInput) { in.RoundToNearest = decimal.Zero }},
		{"zero bill on tip", TipTarget, func(in *RoundingInput) { in.BillTotal = decimal.Zero }},
		{"zero bill on total", TotalTarget, func(in *RoundingInput) { in.BillTotal = decimal.Zero }},
		{"unknown target", Target(99), func(in *RoundingInput) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			got := Round(tt.target, in)
			if got.Applied {
				t.Fatalf("expected no-op, got %+v", got)
			}
			if got.TipPercentage.Cmp(in.TipPercentage) != 0 {
				t.Errorf("TipPercentage = %v, want unchanged %v", got.TipPercentage, in.TipPercentage)
			}
		})
	}
}

func TestRoundTipAndTotalHelpers(t *testing.T) {
	in := RoundingInput{
		BillTotal:      d("10.00"),
		TipPercentage:  d("0.01"),
		RoundToNearest: d("1.00"),
		Rule:           models.RoundToNearestAwayFromZero,
	}
	if got, want := RoundTotal(in), Round(TotalTarget, in); got.TipPercentage.Cmp(want.TipPercentage) != 0 {
		t.Errorf("RoundTotal = %v, want %v", got.TipPercentage, want.TipPercentage)
	}
	if got, want := RoundTip(in), Round(TipTarget, in); got.TipPercentage.Cmp(want.TipPercentage) != 0 {
		t.Errorf("RoundTip = %v, want %v", got.TipPercentage, want.TipPercentage)
	}
}

func TestRoundInteger(t *testing.T) {
	tests := []struct {
		in   string
		rule models.RoundingRule
		want string
	}{
		{"6.9732", models.RoundUp, "7"},
		{"7", models.RoundUp, "7"},
		{"0.0001", models.RoundUp, "1"},
		{"-0.4", models.RoundUp, "0"},
		{"2.5", models.RoundToNearestAwayFromZero, "3"},
		{"2.4999", models.RoundToNearestAwayFromZero, "2"},
		{"-2.5", models.RoundToNearestAwayFromZero, "-3"},
		{"-2.4", models.RoundToNearestAwayFromZero, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.in+"/"+tt.rule.String(), func(t *testing.T) {
			got, err := roundInteger(d(tt.in), tt.rule)
			if err != nil {
				t.Fatalf("roundInteger failed: %v", err)
			}
			if got.Cmp(d(tt.want)) != 0 {
				t.Errorf("roundInteger(%s) = %v, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestTotalAmount(t *testing.T) {
	total, err := TotalAmount(d("19.37"), d("0.18"))
	if err != nil {
		t.Fatalf("TotalAmount failed: %v", err)
	}
	if total.Cmp(d("22.8566")) != 0 {
		t.Errorf("TotalAmount = %v, want 22.8566", total)
	}
}
