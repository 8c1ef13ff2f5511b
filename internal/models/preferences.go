package models

import (
	"time"

	"github.com/govalues/decimal"
)

// Name identifies a persisted preference key.
type Name string

// Preference keys as they appear in the key-value store.
const (
	NameDefaultTipPercentage Name = "defaultTipPercentage"
	NameMinimumTipPercentage Name = "minimumTipPercentage"
	NameMaximumTipPercentage Name = "maximumTipPercentage"
	NameRoundToNearest       Name = "roundToNearestIncrement"
	NameRoundingRule         Name = "roundingRule"
	NameLastUpdated          Name = "lastUpdated"
	NameBillTotal            Name = "billTotal"
	NameTipPercentage        Name = "tipPercentage"
)

// Names lists every preference key in a stable order.
var Names = []Name{
	NameDefaultTipPercentage,
	NameMinimumTipPercentage,
	NameMaximumTipPercentage,
	NameRoundToNearest,
	NameRoundingRule,
	NameLastUpdated,
	NameBillTotal,
	NameTipPercentage,
}

// PreferenceSet is the full set of persisted preferences.
// Percentages are fractions: 0.18 means 18%.
type PreferenceSet struct {
	// DefaultTipPercentage seeds a fresh session.
	// Always within [MinimumTipPercentage, MaximumTipPercentage].
	DefaultTipPercentage decimal.Decimal

	// MinimumTipPercentage is the lower slider bound.
	MinimumTipPercentage decimal.Decimal

	// MaximumTipPercentage is the upper slider bound.
	MaximumTipPercentage decimal.Decimal

	// RoundToNearest is the rounding increment in currency units.
	// Zero disables the rounding gesture.
	RoundToNearest decimal.Decimal

	// RoundingRule resolves the remainder when rounding to the increment.
	RoundingRule RoundingRule

	// LastUpdated is set when session values are persisted. Nil if never.
	LastUpdated *time.Time

	// BillTotal and TipPercentage are the last session's values.
	// They are only reused if the session is fresh.
	BillTotal     decimal.Decimal
	TipPercentage decimal.Decimal
}

// Defaults holds the built-in fallback for every preference.
var Defaults = PreferenceSet{
	DefaultTipPercentage: decimal.MustParse("0.18"),
	MinimumTipPercentage: decimal.MustParse("0.10"),
	MaximumTipPercentage: decimal.MustParse("0.25"),
	RoundToNearest:       decimal.MustParse("0.50"),
	RoundingRule:         RoundUp,
	LastUpdated:          nil,
	BillTotal:            decimal.Zero,
	TipPercentage:        decimal.MustParse("0.18"),
}
