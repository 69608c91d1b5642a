// Package currency converts monetary amounts between currencies using a
// static rate table.
package currency

import (
	"fmt"
	"math"
	"sort"
)

type pair struct {
	from string
	to   string
}

// rates is the fixed multiplicative rate table. Pairs are listed in both
// directions; anything absent converts at 1:1.
var rates = map[pair]float64{
	{"USD", "EUR"}: 0.92,
	{"EUR", "USD"}: 1.09,
	{"USD", "GBP"}: 0.79,
	{"GBP", "USD"}: 1.27,
	{"USD", "INR"}: 83.12,
	{"INR", "USD"}: 0.012,
	{"USD", "JPY"}: 149.50,
	{"JPY", "USD"}: 0.0067,
	{"USD", "CAD"}: 1.36,
	{"CAD", "USD"}: 0.74,
	{"USD", "AUD"}: 1.52,
	{"AUD", "USD"}: 0.66,
	{"EUR", "GBP"}: 0.86,
	{"GBP", "EUR"}: 1.16,
	{"EUR", "INR"}: 90.40,
	{"INR", "EUR"}: 0.011,
	{"GBP", "INR"}: 105.20,
	{"INR", "GBP"}: 0.0095,
	{"USD", "SGD"}: 1.34,
	{"SGD", "USD"}: 0.75,
}

// Convert applies the fixed rate for (from, to) and rounds to two decimals.
// Same-currency pairs are the identity; unknown pairs fall back to a rate of
// 1 rather than failing.
func Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	rate, ok := rates[pair{from, to}]
	if !ok {
		rate = 1
	}
	return Round(amount * rate)
}

// Round rounds to two decimal places, halves away from zero.
func Round(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Rate returns the table rate for a pair, or 1 when the pair is unknown.
func Rate(from, to string) float64 {
	if from == to {
		return 1
	}
	if rate, ok := rates[pair{from, to}]; ok {
		return rate
	}
	return 1
}

// Known reports whether the pair has an entry in the rate table.
func Known(from, to string) bool {
	_, ok := rates[pair{from, to}]
	return ok
}

// Codes returns the sorted set of currency codes present in the rate table.
func Codes() []string {
	seen := make(map[string]bool)
	for p := range rates {
		seen[p.from] = true
		seen[p.to] = true
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ParseAmount validates an amount path parameter.
func ParseAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount is not a finite number")
	}
	if amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	return nil
}
