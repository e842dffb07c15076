// Package normalize holds the pure per-value conversions of the pipeline:
// currency strings to signed decimals, free-form dates to calendar dates,
// and display-text cleanup. All functions are stateless.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Multi-character prefixes must come before their single-character
// substrings so "US$" is consumed before "$".
var currencyTokens = []string{"US$", "R$", "USD", "EUR", "GBP", "CAD", "AUD", "$", "£", "€", "¥"}

// Amount converts a currency string into a signed decimal. It strips
// currency symbols and thousands separators, and reads parenthesized values
// as negative: "(12.34)" becomes -12.34.
func Amount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
