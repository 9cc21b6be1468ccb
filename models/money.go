package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const currencySymbol = "$"

// FormatMoney renders an amount the way order history stores it, e.g. "$12.50".
func FormatMoney(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

// ParseMoney is the inverse of FormatMoney. The currency symbol is optional.
func ParseMoney(s string) (decimal.Decimal, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), currencySymbol)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return d, nil
}
