package formulas

import "github.com/shopspring/decimal"

// RoundMoney rounds a monetary amount to cents, half away from zero.
func RoundMoney(v float64) float64 {
	return RoundTo(v, 2)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int32) float64 {
	v = Finite(v)
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
