package numeric

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/govalues/money"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale is the set of symbols used to read and write numbers for one region.
type Locale struct {
	Tag              language.Tag
	DecimalSeparator string
	GroupSeparator   string
	CurrencySymbol   string
	Currency         money.Currency

	// SymbolAfter places the currency symbol after the amount ("1 234,50 €").
	// DetectLocale leaves it false; x/text carries no currency patterns.
	SymbolAfter bool
}

// DefaultLocale is en-US.
func DefaultLocale() Locale {
	return Locale{
		Tag:              language.AmericanEnglish,
		DecimalSeparator: ".",
		GroupSeparator:   ",",
		CurrencySymbol:   "$",
		Currency:         money.MustParseCurr("USD"),
	}
}

// DetectLocale derives separators and currency for a BCP 47 tag such as
// "en-US" or "de-DE". Unparseable tags yield DefaultLocale.
func DetectLocale(tag string) Locale {
	t, err := language.Parse(tag)
	if err != nil {
		slog.Debug("Unknown locale, using default", "tag", tag, "error", err)
		return DefaultLocale()
	}

	def := DefaultLocale()
	p := message.NewPrinter(t)
	loc := Locale{
		Tag:              t,
		DecimalSeparator: separatorIn(p.Sprint(number.Decimal(1.5, number.Scale(1))), def.DecimalSeparator),
		GroupSeparator:   separatorIn(p.Sprint(number.Decimal(1234567, number.Scale(0))), ""),
		Currency:         def.Currency,
	}

	unit := currency.USD
	if u, conf := currency.FromTag(t); conf != language.No {
		if curr, err := money.ParseCurr(u.String()); err == nil {
			loc.Currency, unit = curr, u
		}
	}
	loc.CurrencySymbol = p.Sprint(currency.Symbol(unit))
	return loc
}

// separatorIn returns the first run of non-digit characters in formatted.
func separatorIn(formatted, fallback string) string {
	start := strings.IndexFunc(formatted, func(r rune) bool { return !unicode.IsDigit(r) })
	if start < 0 {
		return fallback
	}
	rest := formatted[start:]
	end := strings.IndexFunc(rest, unicode.IsDigit)
	if end < 0 {
		return fallback
	}
	return rest[:end]
}
