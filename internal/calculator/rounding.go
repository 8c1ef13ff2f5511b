package calculator

import (
	"fmt"

	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/models"
)

// Target is the displayed amount a rounding gesture applies to.
type Target int

const (
	// TipTarget rounds the tip amount.
	TipTarget Target = iota + 1
	// TotalTarget rounds the bill total including tip.
	TotalTarget
)

// String returns the target name used in logs and metric labels.
func (t Target) String() string {
	switch t {
	case TipTarget:
		return "tip"
	case TotalTarget:
		return "total"
	default:
		return "unknown"
	}
}

// RoundingInput is the session state a rounding gesture operates on.
type RoundingInput struct {
	BillTotal      decimal.Decimal
	TipPercentage  decimal.Decimal
	RoundToNearest decimal.Decimal
	Rule           models.RoundingRule
}

// RoundingResult is the outcome of a rounding gesture.
type RoundingResult struct {
	// TipPercentage is the new tip fraction. Unchanged when Applied is false.
	// It may fall outside the configured bounds; callers must not re-clamp it.
	TipPercentage decimal.Decimal

	// Rounded is the rounded tip amount or rounded total, depending on target.
	Rounded decimal.Decimal

	// TipAmount is the tip implied by the new percentage.
	TipAmount decimal.Decimal

	// FloorApplied reports that the configured rule would have left a
	// non-positive tip and RoundUp was used instead.
	FloorApplied bool

	// Applied is false for no-op gestures.
	Applied bool
}

var half = decimal.MustNew(5, 1)

// Round applies a rounding gesture to the given target.
// It is a no-op when the increment is not positive, the bill is zero,
// the target is unknown, or the arithmetic overflows.
func Round(target Target, in RoundingInput) RoundingResult {
	noop := RoundingResult{TipPercentage: in.TipPercentage}
	if in.RoundToNearest.Sign() <= 0 || in.BillTotal.IsZero() {
		return noop
	}

	var (
		res RoundingResult
		err error
	)
	switch target {
	case TipTarget:
		res, err = roundTip(in)
	case TotalTarget:
		res, err = roundTotal(in)
	default:
		return noop
	}
	if err != nil {
		return noop
	}
	return res
}

// RoundTip rounds the tip amount to the nearest increment.
func RoundTip(in RoundingInput) RoundingResult {
	return Round(TipTarget, in)
}

// RoundTotal rounds the bill total including tip to the nearest increment.
func RoundTotal(in RoundingInput) RoundingResult {
	return Round(TotalTarget, in)
}

func roundTip(in RoundingInput) (RoundingResult, error) {
	oldTip, err := in.TipPercentage.Mul(in.BillTotal)
	if err != nil {
		return RoundingResult{}, fmt.Errorf("failed to compute tip: %w", err)
	}

	rounded, err := roundToIncrement(oldTip, in.RoundToNearest, in.Rule)
	if err != nil {
		return RoundingResult{}, err
	}
	floor := false
	// Make sure the tip doesn't go below 0
	if rounded.Sign() <= 0 {
		rounded, err = roundToIncrement(oldTip, in.RoundToNearest, models.RoundUp)
		if err != nil {
			return RoundingResult{}, err
		}
		floor = true
	}

	pct, err := rounded.Quo(in.BillTotal)
	if err != nil {
		return RoundingResult{}, fmt.Errorf("failed to compute tip percentage: %w", err)
	}
	return RoundingResult{
		TipPercentage: pct,
		Rounded:       rounded,
		TipAmount:     rounded,
		FloorApplied:  floor,
		Applied:       true,
	}, nil
}

func roundTotal(in RoundingInput) (RoundingResult, error) {
	oldTotal, err := TotalAmount(in.BillTotal, in.TipPercentage)
	if err != nil {
		return RoundingResult{}, err
	}

	rounded, err := roundToIncrement(oldTotal, in.RoundToNearest, in.Rule)
	if err != nil {
		return RoundingResult{}, err
	}
	floor := false
	// A total at or below the bill means a tip of zero or less
	if rounded.Cmp(in.BillTotal) <= 0 {
		rounded, err = roundToIncrement(oldTotal, in.RoundToNearest, models.RoundUp)
		if err != nil {
			return RoundingResult{}, err
		}
		floor = true
	}

	tip, err := rounded.Sub(in.BillTotal)
	if err != nil {
		return RoundingResult{}, fmt.Errorf("failed to compute tip: %w", err)
	}
	pct, err := tip.Quo(in.BillTotal)
	if err != nil {
		return RoundingResult{}, fmt.Errorf("failed to compute tip percentage: %w", err)
	}
	return RoundingResult{
		TipPercentage: pct,
		Rounded:       rounded,
		TipAmount:     tip,
		FloorApplied:  floor,
		Applied:       true,
	}, nil
}

// roundToIncrement computes round(amount / increment, rule) * increment.
func roundToIncrement(amount, increment decimal.Decimal, rule models.RoundingRule) (decimal.Decimal, error) {
	q, err := amount.Quo(increment)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to divide by increment: %w", err)
	}
	n, err := roundInteger(q, rule)
	if err != nil {
		return decimal.Decimal{}, err
	}
	out, err := n.Mul(increment)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to multiply by increment: %w", err)
	}
	return out, nil
}

// roundInteger rounds d to an integer under the given rule.
func roundInteger(d decimal.Decimal, rule models.RoundingRule) (decimal.Decimal, error) {
	switch rule {
	case models.RoundToNearestAwayFromZero:
		abs, err := d.Abs().Add(half)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("failed to round: %w", err)
		}
		abs = abs.Floor(0)
		if d.IsNeg() {
			return abs.Neg(), nil
		}
		return abs, nil
	default:
		return d.Ceil(0), nil
	}
}
