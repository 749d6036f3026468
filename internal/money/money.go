// Package money owns currency display formatting. The same formatter feeds
// both the JSON totals endpoints and the PDF renderer so the two surfaces
// can never disagree on how an amount looks.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Russian)

// FormatRub renders an amount with Russian digit grouping, rounded to whole
// rubles, with the currency sign appended.
func FormatRub(v float64) string {
	return printer.Sprintf("%.0f ₽", v)
}

// FormatRubExact keeps kopecks, for finance ledger rows.
func FormatRubExact(v float64) string {
	return printer.Sprintf("%.2f ₽", v)
}
