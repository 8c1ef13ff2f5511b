package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/calculator"
	"github.com/mjec/tipcalc/internal/metrics"
	"github.com/mjec/tipcalc/internal/models"
	"github.com/mjec/tipcalc/internal/numeric"
	"github.com/mjec/tipcalc/internal/preferences"
)

var hundred = decimal.MustNew(100, 0)

// Display is everything the calculator screen renders.
type Display struct {
	SessionID     string
	BillTotal     string
	Placeholder   string
	TipPercentage string
	TipAmount     string
	TotalAmount   string

	// Slider values are whole percentages. SliderValue is the tip percentage
	// clamped into [SliderMinimum, SliderMaximum]; the tip itself may lie outside.
	SliderValue   float64
	SliderMinimum float64
	SliderMaximum float64
}

// TipService is the calculator screen controller. It owns the transient
// bill/tip pair and writes it back to the preference store on Disappear.
type TipService struct {
	prefs   *preferences.Store
	codec   *numeric.Codec
	metrics *metrics.Metrics
	bill    *numeric.Field

	sessionID     string
	billTotal     decimal.Decimal
	tipPercentage decimal.Decimal

	// Copied from the store on Load and Appear; read-only within a session.
	roundToNearest decimal.Decimal
	rule           models.RoundingRule
	sliderMin      decimal.Decimal
	sliderMax      decimal.Decimal
}

// NewTipService creates a TipService. m may be nil.
func NewTipService(prefs *preferences.Store, codec *numeric.Codec, m *metrics.Metrics) *TipService {
	return &TipService{
		prefs:   prefs,
		codec:   codec,
		metrics: m,
		bill:    codec.CurrencyField(),
	}
}

// Load starts a session: it resumes the persisted bill and tip if they were
// saved less than calculator.StalenessWindow before now, otherwise it starts
// from an empty bill and the default tip percentage.
func (s *TipService) Load(now time.Time) Display {
	s.refreshSettings()

	start := calculator.ResolveStart(s.prefs.Snapshot(), now)
	s.billTotal = start.BillTotal
	s.tipPercentage = start.TipPercentage
	s.bill.SetValue(s.billTotal)
	s.sessionID = uuid.NewString()
	s.metrics.ObserveSessionStart(start.Resumed)

	slog.Info("Session started",
		"session_id", s.sessionID,
		"resumed", start.Resumed,
		"bill_total", s.billTotal.String(),
		"tip_percentage", s.tipPercentage.String(),
	)
	return s.Display()
}

// Appear re-reads the settings, which may have been edited while the screen
// was hidden, and applies loc to the shared number symbols.
func (s *TipService) Appear(loc numeric.Locale) Display {
	s.refreshSettings()
	s.codec.Symbols.Update(loc)
	if !s.bill.Editing() {
		s.bill.SetValue(s.billTotal)
	}
	slog.Debug("Calculator appeared",
		"session_id", s.sessionID,
		"locale", loc.Tag.String(),
		"round_to_nearest", s.roundToNearest.String(),
		"rounding_rule", s.rule.String(),
	)
	return s.Display()
}

// BillField returns the bill text field for keystroke filtering.
func (s *TipService) BillField() *numeric.Field {
	return s.bill
}

// BillEdited updates the bill from the raw field text. Text that does not
// parse, or parses as negative, is a zero bill.
func (s *TipService) BillEdited(text string) Display {
	s.bill.SetText(text)
	v, ok := s.codec.Currency.Parse(text)
	if !ok || v.IsNeg() {
		v = decimal.Zero
	}
	s.billTotal = v
	return s.Display()
}

// SliderMoved sets the tip from a slider position in whole percent.
// The position is clamped to the slider range and rounded to an integer.
func (s *TipService) SliderMoved(value float64) Display {
	if math.IsNaN(value) {
		return s.Display()
	}
	lo, _ := s.sliderMin.Float64()
	hi, _ := s.sliderMax.Float64()
	value = math.Max(lo, math.Min(value, hi))

	pct, err := decimal.New(int64(math.Round(value)), 2)
	if err != nil {
		slog.Warn("Ignoring slider position", "session_id", s.sessionID, "value", value, "error", err)
		return s.Display()
	}
	s.tipPercentage = pct
	return s.Display()
}

// DoubleTap rounds the tip amount or the total to the configured increment.
// The resulting tip percentage is kept even when it lies outside the bounds.
func (s *TipService) DoubleTap(target calculator.Target) Display {
	res := calculator.Round(target, calculator.RoundingInput{
		BillTotal:      s.billTotal,
		TipPercentage:  s.tipPercentage,
		RoundToNearest: s.roundToNearest,
		Rule:           s.rule,
	})

	outcome := metrics.OutcomeApplied
	switch {
	case !res.Applied:
		outcome = metrics.OutcomeNoop
	case res.FloorApplied:
		outcome = metrics.OutcomeFloor
	}
	s.metrics.ObserveGesture(target.String(), outcome)

	if res.Applied {
		s.tipPercentage = res.TipPercentage
	}
	slog.Debug("Rounding gesture",
		"session_id", s.sessionID,
		"target", target.String(),
		"outcome", outcome,
		"rounded", res.Rounded.String(),
		"tip_percentage", s.tipPercentage.String(),
	)
	return s.Display()
}

// Disappear persists the bill and tip stamped with now and flushes the store.
// A flush error is returned; the in-memory session stays usable.
func (s *TipService) Disappear(ctx context.Context, now time.Time) error {
	s.prefs.SetSession(s.billTotal, s.tipPercentage, now)
	err := s.prefs.Flush(ctx)
	s.metrics.ObserveFlush(err)
	if err != nil {
		slog.Error("Failed to save session", "session_id", s.sessionID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	slog.Info("Session saved", "session_id", s.sessionID)
	return nil
}

// BillTotal returns the current bill.
func (s *TipService) BillTotal() decimal.Decimal {
	return s.billTotal
}

// TipPercentage returns the current tip fraction.
func (s *TipService) TipPercentage() decimal.Decimal {
	return s.tipPercentage
}

// Display renders the current session.
func (s *TipService) Display() Display {
	tip, err := calculator.TipAmount(s.billTotal, s.tipPercentage)
	if err != nil {
		slog.Warn("Tip amount overflow", "session_id", s.sessionID, "error", err)
		tip = decimal.Zero
	}
	total, err := calculator.TotalAmount(s.billTotal, s.tipPercentage)
	if err != nil {
		slog.Warn("Total amount overflow", "session_id", s.sessionID, "error", err)
		total = s.billTotal
	}

	lo, _ := s.sliderMin.Float64()
	hi, _ := s.sliderMax.Float64()
	return Display{
		SessionID:     s.sessionID,
		BillTotal:     s.bill.Text(),
		Placeholder:   s.codec.Symbols.CurrencySymbol(),
		TipPercentage: s.codec.Percentage.Format(s.tipPercentage),
		TipAmount:     s.codec.Currency.Format(tip),
		TotalAmount:   s.codec.Currency.Format(total),
		SliderValue:   s.sliderValue(lo, hi),
		SliderMinimum: lo,
		SliderMaximum: hi,
	}
}

func (s *TipService) sliderValue(lo, hi float64) float64 {
	p, err := s.tipPercentage.Mul(hundred)
	if err != nil {
		return lo
	}
	v, _ := p.Float64()
	return math.Max(lo, math.Min(v, hi))
}

func (s *TipService) refreshSettings() {
	s.roundToNearest = s.prefs.RoundToNearest()
	s.rule = s.prefs.RoundingRule()
	s.sliderMin = percent(s.prefs.MinimumTipPercentage())
	s.sliderMax = percent(s.prefs.MaximumTipPercentage())
}

// percent converts a fraction to whole-percent units.
func percent(d decimal.Decimal) decimal.Decimal {
	p, err := d.Mul(hundred)
	if err != nil {
		return d
	}
	return p
}
