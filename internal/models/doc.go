// Package models defines the core domain models for TipCalc.
//
// # Models
//
//   - PreferenceSet: every persisted setting plus the last session's values
//   - RoundingRule: how a rounded amount resolves its remainder
//   - Name: the key each preference is stored under
//
// All money and percentage values are [decimal.Decimal]. Percentages are
// fractions internally (0.18) and only become "18%" at the display edge.
//
// # Invariants
//
// Whenever a PreferenceSet is read from the preference store:
//
//	MinimumTipPercentage <= DefaultTipPercentage <= MaximumTipPercentage
//	RoundToNearest >= 0
//
// The preference store is the only component allowed to break and repair
// the first invariant during an update.
//
// # Persisted rule codes
//
// RoundingRule is stored as a small integer: 0 = default, 1 = RoundUp,
// 2 = RoundToNearestAwayFromZero. Any other code reads back as the default.
//
// [decimal.Decimal]: https://pkg.go.dev/github.com/govalues/decimal#Decimal
package models
