package service

import "github.com/shopspring/decimal"

// Monetary sums are kept at two decimals and per-share prices at four.
// Rounding happens after every ledger step so replays stay reproducible
// instead of accumulating float drift.

// round2 rounds a currency amount to two decimal places (round half up).
func round2(value float64) float64 {
	f, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return f
}

// round4 rounds a per-share price to four decimal places (round half up).
func round4(value float64) float64 {
	f, _ := decimal.NewFromFloat(value).Round(4).Float64()
	return f
}
