package numeric

import "strings"

// NumericCharacters are the digits accepted by the input filter.
const NumericCharacters = "0123456789"

// Filter decides per keystroke whether an edit to a numeric field is allowed.
type Filter struct {
	symbols *Symbols
}

// NewFilter returns a Filter reading the decimal separator from symbols.
func NewFilter(symbols *Symbols) Filter {
	return Filter{symbols: symbols}
}

// Accept reports whether replacing length runes at start of current with
// replacement should be allowed. Deletions are always allowed. Otherwise the
// replacement may only contain digits and the decimal separator, and the
// result may contain at most one decimal separator.
func (f Filter) Accept(current string, start, length int, replacement string) bool {
	if replacement == "" {
		return true
	}
	sep := f.symbols.DecimalSeparator()
	if StripNonNumeric(replacement, sep) != replacement {
		return false
	}
	return atMostOneSeparator(Replace(current, start, length, replacement), sep)
}

// StripNonNumeric drops every character that is neither a digit nor part of sep.
func StripNonNumeric(s, sep string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(NumericCharacters, r) || strings.ContainsRune(sep, r) {
			return r
		}
		return -1
	}, s)
}

// Replace substitutes length runes at start of s with replacement.
// Out-of-range offsets are clamped to the string.
func Replace(s string, start, length int, replacement string) string {
	runes := []rune(s)
	start = max(0, min(start, len(runes)))
	end := max(start, min(start+max(length, 0), len(runes)))
	return string(runes[:start]) + replacement + string(runes[end:])
}

func atMostOneSeparator(s, sep string) bool {
	if sep == "" {
		return true
	}
	return strings.Count(s, sep) < 2
}
