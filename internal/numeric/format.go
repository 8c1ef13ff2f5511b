package numeric

import (
	"strings"

	"github.com/govalues/decimal"
)

// Style selects how a Formatter reads and writes numbers.
type Style int

const (
	// Currency formats amounts with the currency symbol at the currency's scale.
	Currency Style = iota + 1
	// Percentage formats fractions as percentages: 0.18 is "18%".
	Percentage
)

// PercentageSignificantDigits is the precision of formatted percentages.
const PercentageSignificantDigits = 3

var hundred = decimal.MustNew(100, 0)

// Formatter renders decimals for display and parses edited text.
// Formatter values are immutable; the Symbols they read may change.
type Formatter struct {
	style          Style
	symbols        *Symbols
	maxSignificant int
}

// NewCurrencyFormatter returns a Currency-style formatter.
func NewCurrencyFormatter(symbols *Symbols) Formatter {
	return Formatter{style: Currency, symbols: symbols}
}

// NewPercentageFormatter returns a Percentage-style formatter limited to
// PercentageSignificantDigits significant digits.
func NewPercentageFormatter(symbols *Symbols) Formatter {
	return Formatter{style: Percentage, symbols: symbols, maxSignificant: PercentageSignificantDigits}
}

// Style returns the formatter's style.
func (f Formatter) Style() Style {
	return f.style
}

// Format renders v. Currency rounds half-even to the currency scale.
// Percentage expects a fraction and rounds half-even to the significant digit limit.
func (f Formatter) Format(v decimal.Decimal) string {
	switch f.style {
	case Percentage:
		return f.formatPercentage(v)
	default:
		return f.formatCurrency(v)
	}
}

func (f Formatter) formatCurrency(v decimal.Decimal) string {
	scale := f.symbols.Currency().Scale()
	r := v.Round(scale).Pad(scale)
	if f.symbols.SymbolAfter() {
		return sign(r) + f.digits(r.Abs()) + "\u00a0" + f.symbols.CurrencySymbol()
	}
	return sign(r) + f.symbols.CurrencySymbol() + f.digits(r.Abs())
}

func (f Formatter) formatPercentage(v decimal.Decimal) string {
	p, err := v.Mul(hundred)
	if err != nil {
		p = v
	}
	p = roundSignificant(p, f.maxSignificant).Trim(0)
	return sign(p) + f.digits(p.Abs()) + "%"
}

// digits writes a non-negative decimal with locale separators.
func (f Formatter) digits(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.String(), ".")
	out := group(whole, f.symbols.GroupSeparator())
	if frac != "" {
		out += f.symbols.DecimalSeparator() + frac
	}
	return out
}

// Parse reads a plain number in either the locale's decimal separator or ".".
// It does not apply the percentage conversion. ok is false on parse failure
// and the returned value is zero.
func (f Formatter) Parse(text string) (v decimal.Decimal, ok bool) {
	s := strings.TrimSpace(text)
	if sep := f.symbols.DecimalSeparator(); sep != "" && sep != "." {
		s = strings.Replace(s, sep, ".", 1)
	}
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	if body == "" || body == "." {
		return decimal.Zero, false
	}
	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	body = strings.TrimSuffix(body, ".")
	if strings.ContainsAny(body, "+-eE") {
		return decimal.Zero, false
	}
	d, err := decimal.Parse(body)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// FromPercent converts a raw percentage (18) to a fraction (0.18).
func FromPercent(p decimal.Decimal) decimal.Decimal {
	d, err := p.Quo(hundred)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func sign(d decimal.Decimal) string {
	if d.IsNeg() {
		return "-"
	}
	return ""
}

// group inserts sep between every three digits of whole, from the right.
func group(whole, sep string) string {
	if sep == "" || len(whole) <= 3 {
		return whole
	}
	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}

// roundSignificant rounds d half-even to n significant digits.
func roundSignificant(d decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 || d.IsZero() {
		return d
	}
	intDigits := d.Prec() - d.Scale()
	if intDigits <= 0 {
		// |d| < 1: skip the zeros between the point and the first digit.
		scale := d.Scale() - d.Prec() + n
		return d.Round(min(scale, decimal.MaxScale))
	}
	if scale := n - intDigits; scale >= 0 {
		return d.Round(scale)
	}

	var factor int64 = 1
	for i := 0; i < intDigits-n; i++ {
		factor *= 10
	}
	f := decimal.MustNew(factor, 0)
	q, err := d.Quo(f)
	if err != nil {
		return d
	}
	r, err := q.Round(0).Mul(f)
	if err != nil {
		return d
	}
	return r
}
