package models

import (
	"github.com/shopspring/decimal"
)

// Odds conversion helpers for callers that compare engine probabilities
// against market prices. Prices are exact decimals so rounding happens once,
// at presentation.

var oddsPlaces = int32(3)

// DecimalOdds converts a win probability to fair decimal odds. Probabilities
// at or below zero have no finite price and return zero.
func DecimalOdds(p float64) decimal.Decimal {
	if p <= 0 || p > 1 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromFloat(p)).Round(oddsPlaces)
}

// AmericanOdds converts a win probability to the American moneyline
// convention: negative for favorites, positive for underdogs.
func AmericanOdds(p float64) decimal.Decimal {
	if p <= 0 || p >= 1 {
		return decimal.Zero
	}
	d := decimal.NewFromFloat(p)
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	if p >= 0.5 {
		// -100 * p / (1 - p)
		return hundred.Neg().Mul(d).Div(one.Sub(d)).Round(0)
	}
	// 100 * (1 - p) / p
	return hundred.Mul(one.Sub(d)).Div(d).Round(0)
}

// ImpliedProbability converts decimal odds back to a probability.
func ImpliedProbability(odds decimal.Decimal) float64 {
	if odds.LessThanOrEqual(decimal.NewFromInt(1)) {
		return 0
	}
	p, _ := decimal.NewFromInt(1).Div(odds).Float64()
	return p
}
