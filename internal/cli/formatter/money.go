package formatter

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
}

// Money renders amount rounded half away from zero to cents, grouped the
// Brazilian way and prefixed with the currency symbol (or code).
func Money(amount float64, currency string) string {
	return printer.Sprintf("%s %.2f", symbol(currency), roundCents(amount))
}

// Amount is Money without the currency prefix.
func Amount(amount float64) string {
	return printer.Sprintf("%.2f", roundCents(amount))
}

// DecimalMoney renders a decimal amount like Money.
func DecimalMoney(d decimal.Decimal, currency string) string {
	f, _ := d.Round(2).Float64()
	return Money(f, currency)
}

func roundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func symbol(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	if code == "" {
		return currencySymbols["BRL"]
	}
	return code
}

// Date renders a calendar date as dd/mm/yyyy, or a dash for nil.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
