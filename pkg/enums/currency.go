package enums

import "fmt"

// Currency is the ISO code a foreign-denominated payment was received in.
// Amounts on payments are always normalized to USD; the original pair is
// kept for bookkeeping.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
	CurrencyVES Currency = "VES"
)

var validCurrencies = []Currency{
	CurrencyUSD,
	CurrencyMXN,
	CurrencyCOP,
	CurrencyVES,
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCurrency converts raw input into a Currency.
func ParseCurrency(value string) (Currency, error) {
	for _, candidate := range validCurrencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
