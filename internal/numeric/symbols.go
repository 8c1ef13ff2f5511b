package numeric

import "github.com/govalues/money"

// Symbols is the process-wide holder of the active locale. It is created once
// at setup and shared by pointer; formatters and filters read it on every
// call so a locale change takes effect immediately.
type Symbols struct {
	locale Locale
}

// NewSymbols returns a holder initialized to loc.
func NewSymbols(loc Locale) *Symbols {
	return &Symbols{locale: loc}
}

// Update replaces the active locale.
func (s *Symbols) Update(loc Locale) {
	s.locale = loc
}

// Locale returns the active locale.
func (s *Symbols) Locale() Locale {
	return s.locale
}

// DecimalSeparator returns the active decimal separator. It may be empty.
func (s *Symbols) DecimalSeparator() string {
	return s.locale.DecimalSeparator
}

// GroupSeparator returns the active digit-group separator.
func (s *Symbols) GroupSeparator() string {
	return s.locale.GroupSeparator
}

// CurrencySymbol returns the placeholder and prefix for currency amounts.
func (s *Symbols) CurrencySymbol() string {
	return s.locale.CurrencySymbol
}

// SymbolAfter reports whether the currency symbol follows the amount.
func (s *Symbols) SymbolAfter() bool {
	return s.locale.SymbolAfter
}

// Currency returns the active currency.
func (s *Symbols) Currency() money.Currency {
	return s.locale.Currency
}
