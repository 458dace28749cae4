package internal

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// All amounts in the app are Chilean pesos. CLP has no decimal subunits, the
// symbol goes before the amount, and es-CL groups thousands with dots:
// $1.234.567.

var clpPrinter = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP formats an integer peso amount with symbol and grouping.
func FormatCLP(amount int64) string {
	return "$" + clpPrinter.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// FormatCLPRange formats a min-max peso range, e.g. "$12.000-$15.000".
func FormatCLPRange(min, max int64) string {
	return FormatCLP(min) + "-" + FormatCLP(max)
}
