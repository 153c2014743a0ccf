package analytics

import (
	"math"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/pkg/formulas"
)

// PerformanceMetrics holds return and risk statistics for a non-empty portfolio.
// All percentages are in percent units (10 means 10%).
type PerformanceMetrics struct {
	AvgReturn        float64 `json:"avg_return"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	AvgHoldingPeriod float64 `json:"avg_holding_period"` // days
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	CashOnCashReturn float64 `json:"cash_on_cash_return"`
	CapRate          float64 `json:"cap_rate"`
	IRR              float64 `json:"irr"`
	YieldOnCost      float64 `json:"yield_on_cost"`
}

// ComputePerformance derives risk and return statistics.
// It returns nil when there are no investments so that callers can render an
// empty portfolio differently from a portfolio with a zero return.
func (e *Engine) ComputePerformance(investments []domain.Investment, summary domain.PortfolioSummary, income IncomeMetrics) *PerformanceMetrics {
	if len(investments) == 0 {
		e.log.Debug().Msg("No investments, performance unavailable")
		return nil
	}

	now := e.Today()
	returns := make([]float64, len(investments))
	holding := make([]float64, len(investments))
	for i, inv := range investments {
		returns[i] = formulas.ReturnPct(inv.TotalInvested, inv.CurrentValue)
		holding[i] = holdingDays(inv, now.Sub(inv.PurchaseDate).Hours()/24)
	}

	avgReturn := formulas.Mean(returns)
	volatility := formulas.SampleStdDev(returns)
	avgHolding := formulas.Mean(holding)

	var annualized float64
	if summary.TotalInvested > 0 {
		annualized = formulas.AnnualizeGrowth(summary.CurrentValue/summary.TotalInvested, avgHolding)
	}

	var drawdown float64
	if summary.TotalReturnPct < 0 {
		drawdown = math.Abs(summary.TotalReturnPct)
	}

	return &PerformanceMetrics{
		AvgReturn:        formulas.Finite(avgReturn),
		Volatility:       volatility,
		SharpeRatio:      formulas.ClampedSharpe(avgReturn, e.opts.RiskFreeRate, volatility),
		AvgHoldingPeriod: formulas.Finite(avgHolding),
		AnnualizedReturn: annualized,
		MaxDrawdown:      drawdown,
		CashOnCashReturn: formulas.SafeDiv(income.AnnualIncome, summary.TotalInvested) * 100,
		CapRate:          income.AverageYield,
		IRR:              annualized,
		YieldOnCost:      income.AverageYield,
	}
}

// holdingDays floors elapsed days at one. Investments without a purchase date count as bought today.
func holdingDays(inv domain.Investment, elapsed float64) float64 {
	if inv.PurchaseDate.IsZero() {
		return 1
	}
	return math.Max(1, formulas.Finite(elapsed))
}

// PeriodSummary describes the change across a valuation window
type PeriodSummary struct {
	StartValue          float64 `json:"start_value"`
	EndValue            float64 `json:"end_value"`
	PeriodChange        float64 `json:"period_change"`
	PeriodChangePercent float64 `json:"period_change_percent"`
}

// SummarizePeriod compares the first and last valuation points.
// An empty series falls back to invested capital and current value.
func SummarizePeriod(valuation domain.Series, summary domain.PortfolioSummary) PeriodSummary {
	start, end := summary.TotalInvested, summary.CurrentValue
	if n := valuation.Len(); n > 0 {
		start = valuation.Data[0]
		end = valuation.Data[n-1]
	}

	change := end - start
	var pct float64
	if start > 0 {
		pct = formulas.Finite(change / start * 100)
	}

	return PeriodSummary{
		StartValue:          formulas.RoundMoney(start),
		EndValue:            formulas.RoundMoney(end),
		PeriodChange:        formulas.RoundMoney(change),
		PeriodChangePercent: formulas.RoundMoney(pct),
	}
}
