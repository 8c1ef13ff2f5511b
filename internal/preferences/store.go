// Package preferences is the single authority over persisted TipCalc settings.
//
// A Store caches every preference in memory. Setters update the cache and mark
// the key dirty; nothing reaches durable storage until Flush is called at a
// checkpoint (settings screen exit, session teardown). Getters never fail:
// absent or malformed values read as the built-in defaults.
//
// The three tip percentages obey minimum <= default <= maximum whenever they
// are read. SetMinimumTipPercentage and SetMaximumTipPercentage clamp the
// incoming bound against the other bound and then force the default into
// range; SetDefaultTipPercentage clamps the default and never moves a bound.
//
// A Store is not safe for concurrent use.
package preferences

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/models"
	"github.com/mjec/tipcalc/internal/storage"
)

// Store is a write-back cache over a storage.Store.
type Store struct {
	backend storage.Store
	values  storage.Values
	dirty   map[models.Name]bool
}

// Adjustment reports what a bounded setter actually stored.
type Adjustment struct {
	// Value is the value stored for the edited field.
	Value decimal.Decimal

	// Clamped is true if Value differs from the requested value.
	Clamped bool

	// DefaultAdjusted is true if the default tip percentage was forced to
	// follow a new minimum or maximum.
	DefaultAdjusted bool

	// Default is the default tip percentage after the update.
	Default decimal.Decimal
}

// Open loads all preferences from backend into a new Store.
func Open(ctx context.Context, backend storage.Store) (*Store, error) {
	s := &Store{
		backend: backend,
		dirty:   make(map[models.Name]bool),
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	values, err := s.backend.LoadPreferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if values == nil {
		values = make(storage.Values)
	}
	for name, raw := range values {
		if raw != nil && !wellFormed(name, raw) {
			slog.Warn("Ignoring malformed preference",
				"name", name,
				"type", fmt.Sprintf("%T", raw),
			)
		}
	}
	s.values = values
	clear(s.dirty)
	s.repairBounds()
	return nil
}

// repairBounds restores min <= default <= max after loading corrupt storage.
func (s *Store) repairBounds() {
	lo, hi, def := s.MinimumTipPercentage(), s.MaximumTipPercentage(), s.DefaultTipPercentage()
	if lo.Cmp(hi) > 0 {
		slog.Warn("Stored tip bounds are inverted, restoring defaults",
			"minimum", lo.String(),
			"maximum", hi.String(),
		)
		s.putDecimal(models.NameMinimumTipPercentage, models.Defaults.MinimumTipPercentage)
		s.putDecimal(models.NameMaximumTipPercentage, models.Defaults.MaximumTipPercentage)
		s.putDecimal(models.NameDefaultTipPercentage, models.Defaults.DefaultTipPercentage)
		return
	}
	if clamped := clamp(def, lo, hi); clamped.Cmp(def) != 0 {
		slog.Warn("Stored default tip is out of bounds, clamping",
			"default", def.String(),
			"clamped", clamped.String(),
		)
		s.putDecimal(models.NameDefaultTipPercentage, clamped)
	}
}

// Get returns the typed value for name: decimal.Decimal for amounts and
// percentages, models.RoundingRule for the rule and *time.Time for lastUpdated.
// Unknown names return nil.
func (s *Store) Get(name models.Name) any {
	switch name {
	case models.NameDefaultTipPercentage:
		return s.DefaultTipPercentage()
	case models.NameMinimumTipPercentage:
		return s.MinimumTipPercentage()
	case models.NameMaximumTipPercentage:
		return s.MaximumTipPercentage()
	case models.NameRoundToNearest:
		return s.RoundToNearest()
	case models.NameRoundingRule:
		return s.RoundingRule()
	case models.NameLastUpdated:
		return s.LastUpdated()
	case models.NameBillTotal:
		return s.BillTotal()
	case models.NameTipPercentage:
		return s.TipPercentage()
	default:
		return nil
	}
}

// Snapshot returns every preference as a models.PreferenceSet.
func (s *Store) Snapshot() models.PreferenceSet {
	return models.PreferenceSet{
		DefaultTipPercentage: s.DefaultTipPercentage(),
		MinimumTipPercentage: s.MinimumTipPercentage(),
		MaximumTipPercentage: s.MaximumTipPercentage(),
		RoundToNearest:       s.RoundToNearest(),
		RoundingRule:         s.RoundingRule(),
		LastUpdated:          s.LastUpdated(),
		BillTotal:            s.BillTotal(),
		TipPercentage:        s.TipPercentage(),
	}
}

func (s *Store) decimalOr(name models.Name, fallback decimal.Decimal) decimal.Decimal {
	if d, ok := asDecimal(s.values[name]); ok {
		return d
	}
	return fallback
}

func (s *Store) nonNegative(name models.Name, fallback decimal.Decimal) decimal.Decimal {
	if d := s.decimalOr(name, fallback); !d.IsNeg() {
		return d
	}
	return fallback
}

// DefaultTipPercentage returns the tip fraction a fresh session starts with.
func (s *Store) DefaultTipPercentage() decimal.Decimal {
	return s.decimalOr(models.NameDefaultTipPercentage, models.Defaults.DefaultTipPercentage)
}

// MinimumTipPercentage returns the lower tip bound.
func (s *Store) MinimumTipPercentage() decimal.Decimal {
	return s.decimalOr(models.NameMinimumTipPercentage, models.Defaults.MinimumTipPercentage)
}

// MaximumTipPercentage returns the upper tip bound.
func (s *Store) MaximumTipPercentage() decimal.Decimal {
	return s.decimalOr(models.NameMaximumTipPercentage, models.Defaults.MaximumTipPercentage)
}

// RoundToNearest returns the rounding increment. Negative stored values read as the default.
func (s *Store) RoundToNearest() decimal.Decimal {
	return s.nonNegative(models.NameRoundToNearest, models.Defaults.RoundToNearest)
}

// RoundingRule returns the rounding rule. Unknown codes read as the default.
func (s *Store) RoundingRule() models.RoundingRule {
	code, ok := asRuleCode(s.values[models.NameRoundingRule])
	if !ok {
		return models.Defaults.RoundingRule
	}
	return models.RuleFromCode(code)
}

// LastUpdated returns when session values were last persisted, or nil.
func (s *Store) LastUpdated() *time.Time {
	t, ok := asTime(s.values[models.NameLastUpdated])
	if !ok {
		return nil
	}
	return &t
}

// BillTotal returns the last session's bill.
func (s *Store) BillTotal() decimal.Decimal {
	return s.nonNegative(models.NameBillTotal, models.Defaults.BillTotal)
}

// TipPercentage returns the last session's tip fraction.
func (s *Store) TipPercentage() decimal.Decimal {
	return s.decimalOr(models.NameTipPercentage, models.Defaults.TipPercentage)
}

// SetMinimumTipPercentage stores a new lower bound.
// A value above the current maximum is clamped down to it. If the new minimum
// exceeds the default, the default is raised to match.
func (s *Store) SetMinimumTipPercentage(v decimal.Decimal) Adjustment {
	adj := Adjustment{Value: v}
	if hi := s.MaximumTipPercentage(); v.Cmp(hi) > 0 {
		adj.Value, adj.Clamped = hi, true
	}
	s.putDecimal(models.NameMinimumTipPercentage, adj.Value)

	adj.Default = s.DefaultTipPercentage()
	if adj.Value.Cmp(adj.Default) > 0 {
		adj.Default, adj.DefaultAdjusted = adj.Value, true
		s.putDecimal(models.NameDefaultTipPercentage, adj.Default)
	}
	s.logAdjustment(models.NameMinimumTipPercentage, v, adj)
	return adj
}

// SetMaximumTipPercentage stores a new upper bound.
// A value below the current minimum is clamped up to it. If the new maximum
// is below the default, the default is lowered to match.
func (s *Store) SetMaximumTipPercentage(v decimal.Decimal) Adjustment {
	adj := Adjustment{Value: v}
	if lo := s.MinimumTipPercentage(); v.Cmp(lo) < 0 {
		adj.Value, adj.Clamped = lo, true
	}
	s.putDecimal(models.NameMaximumTipPercentage, adj.Value)

	adj.Default = s.DefaultTipPercentage()
	if adj.Value.Cmp(adj.Default) < 0 {
		adj.Default, adj.DefaultAdjusted = adj.Value, true
		s.putDecimal(models.NameDefaultTipPercentage, adj.Default)
	}
	s.logAdjustment(models.NameMaximumTipPercentage, v, adj)
	return adj
}

// SetDefaultTipPercentage stores a new default, clamped into [minimum, maximum].
// The bounds are never moved.
func (s *Store) SetDefaultTipPercentage(v decimal.Decimal) Adjustment {
	clamped := clamp(v, s.MinimumTipPercentage(), s.MaximumTipPercentage())
	adj := Adjustment{
		Value:   clamped,
		Clamped: clamped.Cmp(v) != 0,
		Default: clamped,
	}
	s.putDecimal(models.NameDefaultTipPercentage, clamped)
	s.logAdjustment(models.NameDefaultTipPercentage, v, adj)
	return adj
}

// SetRoundToNearest stores the rounding increment. Negative values are clamped to zero.
func (s *Store) SetRoundToNearest(v decimal.Decimal) Adjustment {
	adj := Adjustment{Value: v, Default: s.DefaultTipPercentage()}
	if v.IsNeg() {
		adj.Value, adj.Clamped = decimal.Zero, true
	}
	s.putDecimal(models.NameRoundToNearest, adj.Value)
	s.logAdjustment(models.NameRoundToNearest, v, adj)
	return adj
}

// SetRoundingRule stores the rounding rule.
func (s *Store) SetRoundingRule(r models.RoundingRule) {
	s.put(models.NameRoundingRule, encodeRule(r))
}

// SetSession stores the transient bill/tip pair and stamps lastUpdated.
func (s *Store) SetSession(billTotal, tipPercentage decimal.Decimal, at time.Time) {
	s.putDecimal(models.NameBillTotal, billTotal)
	s.putDecimal(models.NameTipPercentage, tipPercentage)
	s.put(models.NameLastUpdated, encodeTime(at))
}

// ResetSettings restores the user-editable settings to the built-in defaults.
// The last session's bill, tip and timestamp are left alone.
func (s *Store) ResetSettings() {
	s.putDecimal(models.NameMinimumTipPercentage, models.Defaults.MinimumTipPercentage)
	s.putDecimal(models.NameMaximumTipPercentage, models.Defaults.MaximumTipPercentage)
	s.putDecimal(models.NameDefaultTipPercentage, models.Defaults.DefaultTipPercentage)
	s.putDecimal(models.NameRoundToNearest, models.Defaults.RoundToNearest)
	s.SetRoundingRule(models.Defaults.RoundingRule)
}

// Dirty reports whether any preference changed since the last Flush or Revert.
func (s *Store) Dirty() bool {
	return len(s.dirty) > 0
}

// Flush writes every dirty preference to durable storage in one batch.
// On error the dirty set is kept so a later Flush can retry.
func (s *Store) Flush(ctx context.Context) error {
	if len(s.dirty) == 0 {
		return nil
	}
	batch := make(storage.Values, len(s.dirty))
	for name := range s.dirty {
		batch[name] = s.values[name]
	}
	if err := s.backend.SavePreferences(ctx, batch); err != nil {
		return fmt.Errorf("failed to flush preferences: %w", err)
	}
	slog.Debug("Preferences flushed", "count", len(batch))
	clear(s.dirty)
	return nil
}

// Revert discards unflushed edits by reloading from durable storage.
func (s *Store) Revert(ctx context.Context) error {
	return s.load(ctx)
}

func (s *Store) put(name models.Name, v any) {
	if s.values == nil {
		s.values = make(storage.Values)
	}
	s.values[name] = v
	s.dirty[name] = true
}

func (s *Store) putDecimal(name models.Name, d decimal.Decimal) {
	s.put(name, encodeDecimal(d))
}

func (s *Store) logAdjustment(name models.Name, requested decimal.Decimal, adj Adjustment) {
	if !adj.Clamped && !adj.DefaultAdjusted {
		return
	}
	slog.Debug("Preference adjusted",
		"name", name,
		"requested", requested.String(),
		"stored", adj.Value.String(),
		"clamped", adj.Clamped,
		"default_adjusted", adj.DefaultAdjusted,
		"default", adj.Default.String(),
	)
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.Cmp(lo) < 0 {
		return lo
	}
	if v.Cmp(hi) > 0 {
		return hi
	}
	return v
}
