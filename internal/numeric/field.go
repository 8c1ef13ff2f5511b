package numeric

import "github.com/govalues/decimal"

// Field is the editing state of one numeric text field.
// Outside of editing its text is always the formatter's canonical output.
type Field struct {
	formatter Formatter
	filter    Filter
	text      string
	editing   bool
}

// NewField returns an empty field using formatter for display and filter for keystrokes.
func NewField(formatter Formatter, filter Filter) *Field {
	return &Field{formatter: formatter, filter: filter}
}

// Text returns the current field text.
func (f *Field) Text() string {
	return f.text
}

// Editing reports whether the field has focus.
func (f *Field) Editing() bool {
	return f.editing
}

// Style returns the field's numeric style.
func (f *Field) Style() Style {
	return f.formatter.Style()
}

// SetValue writes the canonical display string for v.
// For Percentage fields v is a fraction.
func (f *Field) SetValue(v decimal.Decimal) {
	f.text = f.formatter.Format(v)
}

// SetText replaces the text verbatim, as when the UI restores a field.
func (f *Field) SetText(text string) {
	f.text = text
}

// BeginEditing strips formatting so only digits and the decimal separator
// remain. A field whose value is zero is cleared to show its placeholder.
func (f *Field) BeginEditing() {
	f.editing = true
	f.text = StripNonNumeric(f.text, f.filter.symbols.DecimalSeparator())
	if v, _ := f.formatter.Parse(f.text); v.IsZero() {
		f.text = ""
	}
}

// Change applies a keystroke edit if the filter accepts it.
func (f *Field) Change(start, length int, replacement string) bool {
	if !f.filter.Accept(f.text, start, length, replacement) {
		return false
	}
	f.text = Replace(f.text, start, length, replacement)
	return true
}

// Value returns the semantic value of the current text: a fraction for
// Percentage fields. Unparseable text is zero.
func (f *Field) Value() decimal.Decimal {
	v, _ := f.formatter.Parse(StripNonNumeric(f.text, f.filter.symbols.DecimalSeparator()))
	if f.formatter.Style() == Percentage {
		return FromPercent(v)
	}
	return v
}

// EndEditing parses the text, replaces it with the canonical display string
// and returns the semantic value.
func (f *Field) EndEditing() decimal.Decimal {
	v := f.Value()
	f.SetValue(v)
	f.editing = false
	return v
}
