package formulas

import "math"

// ReturnPct is the simple percentage return of value over cost.
// A zero cost basis has no meaningful return and yields 0.
func ReturnPct(cost, value float64) float64 {
	if cost == 0 {
		return 0
	}
	return Finite((value - cost) / cost * 100)
}

// ClampedSharpe computes (mean - riskFree) / stdDev with both inputs in percent.
// Zero dispersion yields 0 and negative ratios are floored at 0.
func ClampedSharpe(mean, riskFree, stdDev float64) float64 {
	if stdDev <= 0 {
		return 0
	}
	return math.Max(0, Finite((mean-riskFree)/stdDev))
}

// AnnualizeGrowth compounds a growth ratio (end/start) observed over holdingDays
// to a yearly percentage: (ratio^(365/holdingDays) - 1) * 100.
// holdingDays below one day is treated as one day. Growth too large to represent
// saturates at math.MaxFloat64.
func AnnualizeGrowth(ratio, holdingDays float64) float64 {
	if ratio <= 0 {
		return Finite((ratio - 1) * 100)
	}
	days := math.Max(1, holdingDays)
	annualized := (math.Pow(ratio, 365/days) - 1) * 100
	if math.IsInf(annualized, 1) {
		return math.MaxFloat64
	}
	return Finite(annualized)
}

// LinearGrowth applies simple (non-compounding) annual growth to principal
// for daysHeld days: principal * (1 + ratePct/100 * daysHeld/365).
func LinearGrowth(principal, ratePct, daysHeld float64) float64 {
	return principal * (1 + ratePct/100*math.Max(0, daysHeld)/365)
}
