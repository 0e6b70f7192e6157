package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Currency renders a monetary value with the single display rule of the app:
// "R$" followed by thousands-dot decimal-comma, e.g. R$ 1.234,56.
// Values are stored raw; formatting happens only at display time.
func Currency(v float64) string {
	return brl.Sprintf("R$ %v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
