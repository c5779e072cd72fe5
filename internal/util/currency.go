package util

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency converts a provider numeric string to a float rounded to
// 2 decimal places. Anything unparseable (empty, "None", garbage) is 0.
func ParseCurrency(value string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.Round(2).InexactFloat64()
}

// SafeDivide returns 0 when the denominator is 0 rather than Inf/NaN.
// Ratio code calls this everywhere a statement field could be zero.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
