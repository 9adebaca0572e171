// Package currency parses the currency-formatted price strings the catalog
// carries (e.g. "₹1,299" or "₹1,299.00") into decimal amounts, and formats
// amounts back at the render boundary. Nothing else in the codebase touches
// the raw strings.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the fixed glyph used for display.
const Symbol = "₹"

var stripper = strings.NewReplacer(Symbol, "", "$", "", ",", "", " ", "")

// Parse strips currency symbols, thousands separators and whitespace, then
// interprets the remainder as a decimal amount.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := stripper.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("currency: empty price %q", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("currency: unparsable price %q: %w", s, err)
	}
	return d, nil
}

// Format renders an amount with the fixed glyph and two decimal places.
func Format(d decimal.Decimal) string {
	return Symbol + d.StringFixed(2)
}
