package main

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney renders v in the currency's minor units, e.g. "$1,234.50"
func formatMoney(v float64, code string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	// money.New never yields a nil currency; unknown codes have no minor units
	cur := money.New(0, code).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func formatSignedPct(v float64) string {
	if v > 0 {
		return "+" + formatPct(v)
	}
	return formatPct(v)
}
