package enums

import (
	"fmt"
	"strings"
)

// Currency is the ISO 4217 code prices and delivery fees are quoted in.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// minor units per currency; fees are rounded to whole major units regardless.
var currencyExponents = map[Currency]int32{
	CurrencyINR: 2,
	CurrencyUSD: 2,
	CurrencyEUR: 2,
}

func (c Currency) String() string { return string(c) }

// IsValid reports whether c is one of the supported storefront currencies.
func (c Currency) IsValid() bool {
	_, ok := currencyExponents[c]
	return ok
}

// Exponent returns the number of minor-unit digits for c, or 0 when unknown.
func (c Currency) Exponent() int32 {
	return currencyExponents[c]
}

// ParseCurrency accepts a code in any case and surrounding whitespace.
func ParseCurrency(value string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(value)))
	if !c.IsValid() {
		return "", fmt.Errorf("unsupported currency %q", value)
	}
	return c, nil
}
