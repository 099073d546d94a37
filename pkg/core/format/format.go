// Package format holds pure presentation helpers shared by the analysis
// engine's reasoning strings and the API layer.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"BRL": "R$",
	"AUD": "A$",
}

// Currency renders an amount with its currency symbol and thousands
// separators, e.g. Currency(82500, "USD") == "$82,500". Unknown codes
// fall back to "CODE amount".
func Currency(amount float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}
	rendered := groupThousands(decimal.NewFromFloat(amount).Round(0))
	if sym, ok := currencySymbols[code]; ok {
		return sym + rendered
	}
	return code + " " + rendered
}

// Percent renders a percentage value (already on the 0-100 scale) with
// at most one decimal place: Percent(12.5) == "12.5%", Percent(8) == "8%".
func Percent(value float64) string {
	d := decimal.NewFromFloat(value).Round(1)
	return d.String() + "%"
}

func groupThousands(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
