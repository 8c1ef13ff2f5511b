// Package numeric reads and writes the numbers shown in TipCalc's text fields.
//
// Two styles exist. Currency fields hold a plain decimal amount. Percentage
// fields display a fraction as a percentage ("18%") and are edited as a raw
// percentage ("18"); converting the raw value back to a fraction is done by
// the Field, not by Formatter.Parse.
//
// Every field shares one Symbols holder, so a locale change is visible to the
// next keystroke filter and the next formatted string.
package numeric

// Codec bundles the shared Symbols with formatters and a filter built on them.
// Build it once during setup and pass it to the components that need it.
type Codec struct {
	Symbols    *Symbols
	Currency   Formatter
	Percentage Formatter
	Filter     Filter
}

// NewCodec builds a Codec for loc.
func NewCodec(loc Locale) *Codec {
	symbols := NewSymbols(loc)
	return &Codec{
		Symbols:    symbols,
		Currency:   NewCurrencyFormatter(symbols),
		Percentage: NewPercentageFormatter(symbols),
		Filter:     NewFilter(symbols),
	}
}

// CurrencyField returns a new Currency-style field.
func (c *Codec) CurrencyField() *Field {
	return NewField(c.Currency, c.Filter)
}

// PercentageField returns a new Percentage-style field.
func (c *Codec) PercentageField() *Field {
	return NewField(c.Percentage, c.Filter)
}
