package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/metrics"
	"github.com/mjec/tipcalc/internal/models"
	"github.com/mjec/tipcalc/internal/numeric"
	"github.com/mjec/tipcalc/internal/preferences"
)

// Form is everything the settings screen renders.
type Form struct {
	DefaultTipPercentage string
	MinimumTipPercentage string
	MaximumTipPercentage string
	RoundToNearest       string
	RoundUp              bool

	// Invalid lists the fields whose value was adjusted by the last edit.
	Invalid []models.Name

	// Dirty is true when there are edits that Discard would throw away.
	Dirty bool
}

// IsInvalid reports whether name was flagged by the last edit.
func (f Form) IsInvalid(name models.Name) bool {
	return slices.Contains(f.Invalid, name)
}

// SettingsService is the settings screen controller. Edits go through the
// preference store's bounded-update protocol; they are flushed on Close.
type SettingsService struct {
	prefs   *preferences.Store
	codec   *numeric.Codec
	metrics *metrics.Metrics
	dirty   bool
}

// NewSettingsService creates a SettingsService. m may be nil.
func NewSettingsService(prefs *preferences.Store, codec *numeric.Codec, m *metrics.Metrics) *SettingsService {
	return &SettingsService{prefs: prefs, codec: codec, metrics: m}
}

// Open renders the stored settings and clears the dirty flag.
func (s *SettingsService) Open() Form {
	s.dirty = false
	return s.form()
}

// Dirty reports whether there are unsaved edits.
func (s *SettingsService) Dirty() bool {
	return s.dirty
}

// EditDefault sets the default tip from a raw percentage such as "18".
// Unparseable text keeps the current value.
func (s *SettingsService) EditDefault(text string) Form {
	v := s.parsePercent(text, s.prefs.DefaultTipPercentage())
	return s.applied(models.NameDefaultTipPercentage, s.prefs.SetDefaultTipPercentage(v))
}

// EditMinimum sets the lower tip bound from a raw percentage.
func (s *SettingsService) EditMinimum(text string) Form {
	v := s.parsePercent(text, s.prefs.MinimumTipPercentage())
	return s.applied(models.NameMinimumTipPercentage, s.prefs.SetMinimumTipPercentage(v))
}

// EditMaximum sets the upper tip bound from a raw percentage.
func (s *SettingsService) EditMaximum(text string) Form {
	v := s.parsePercent(text, s.prefs.MaximumTipPercentage())
	return s.applied(models.NameMaximumTipPercentage, s.prefs.SetMaximumTipPercentage(v))
}

// EditRoundToNearest sets the rounding increment in currency units.
func (s *SettingsService) EditRoundToNearest(text string) Form {
	v, ok := s.parse(text)
	if !ok {
		v = s.prefs.RoundToNearest()
	}
	return s.applied(models.NameRoundToNearest, s.prefs.SetRoundToNearest(v))
}

// SetRoundUp selects RoundUp when on, RoundToNearestAwayFromZero otherwise.
func (s *SettingsService) SetRoundUp(on bool) Form {
	rule := models.RoundToNearestAwayFromZero
	if on {
		rule = models.RoundUp
	}
	s.prefs.SetRoundingRule(rule)
	s.dirty = true
	return s.form()
}

// ResetToDefaults restores the built-in settings. They are saved on Close.
func (s *SettingsService) ResetToDefaults() Form {
	s.prefs.ResetSettings()
	s.dirty = true
	return s.form()
}

// Discard throws away unsaved edits by reloading the store.
func (s *SettingsService) Discard(ctx context.Context) (Form, error) {
	if err := s.prefs.Revert(ctx); err != nil {
		slog.Error("Failed to discard settings", "error", err)
		return s.form(), fmt.Errorf("failed to discard settings: %w", err)
	}
	s.dirty = false
	return s.form(), nil
}

// Close saves the settings if anything was edited.
func (s *SettingsService) Close(ctx context.Context) error {
	if !s.dirty {
		return nil
	}
	err := s.prefs.Flush(ctx)
	s.metrics.ObserveFlush(err)
	if err != nil {
		slog.Error("Failed to save settings", "error", err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.dirty = false
	slog.Info("Settings saved")
	return nil
}

func (s *SettingsService) applied(name models.Name, adj preferences.Adjustment) Form {
	s.dirty = true
	f := s.form()
	if adj.Clamped {
		s.metrics.ObserveClamp(string(name))
		f.Invalid = append(f.Invalid, name)
	}
	if adj.DefaultAdjusted {
		s.metrics.ObserveClamp(string(models.NameDefaultTipPercentage))
		f.Invalid = append(f.Invalid, models.NameDefaultTipPercentage)
	}
	return f
}

func (s *SettingsService) parse(text string) (decimal.Decimal, bool) {
	return s.codec.Currency.Parse(numeric.StripNonNumeric(text, s.codec.Symbols.DecimalSeparator()))
}

func (s *SettingsService) parsePercent(text string, fallback decimal.Decimal) decimal.Decimal {
	v, ok := s.parse(text)
	if !ok {
		return fallback
	}
	return numeric.FromPercent(v)
}

func (s *SettingsService) form() Form {
	return Form{
		DefaultTipPercentage: s.codec.Percentage.Format(s.prefs.DefaultTipPercentage()),
		MinimumTipPercentage: s.codec.Percentage.Format(s.prefs.MinimumTipPercentage()),
		MaximumTipPercentage: s.codec.Percentage.Format(s.prefs.MaximumTipPercentage()),
		RoundToNearest:       s.codec.Currency.Format(s.prefs.RoundToNearest()),
		RoundUp:              s.prefs.RoundingRule() == models.RoundUp,
		Dirty:                s.dirty,
	}
}
