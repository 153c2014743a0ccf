package analytics

import (
	"math"
	"time"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/modules/portfolio"
	"github.com/domufi/analytics/pkg/formulas"
)

// IncomeMetrics holds projected and realised rental income
type IncomeMetrics struct {
	NextPayout       time.Time `json:"next_payout"`
	MonthlyIncome    float64   `json:"monthly_income"`
	AnnualIncome     float64   `json:"annual_income"`
	DailyIncome      float64   `json:"daily_income"`
	WeightedYield    float64   `json:"weighted_yield"`
	AverageYield     float64   `json:"average_yield"`
	LifetimeIncome   float64   `json:"lifetime_income"`
	NextPayoutAmount float64   `json:"next_payout_amount"`
	DaysUntilPayout  int       `json:"days_until_payout"`
	TotalProperties  int       `json:"total_properties"`
}

// ComputeIncome derives income projections from the ledger.
// Months are approximated as 30 days when converting to daily income.
func (e *Engine) ComputeIncome(investments []domain.Investment, transactions []domain.Transaction) IncomeMetrics {
	summary := portfolio.Summarize(investments)

	var monthly, weighted float64
	for _, inv := range investments {
		roi := inv.ROIOr(e.opts.DefaultROI)
		monthly += inv.TotalInvested * roi / 100 / 12
		weighted += roi * inv.TotalInvested
	}

	lifetime := dividendTotal(transactions)
	if lifetime == 0 {
		lifetime = perPropertyDividends(investments, transactions)
	}

	now := e.Today()
	nextPayout := endOfMonth(now)
	days := int(math.Ceil(nextPayout.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}

	return IncomeMetrics{
		MonthlyIncome:    formulas.Finite(monthly),
		AnnualIncome:     formulas.Finite(monthly * 12),
		DailyIncome:      formulas.Finite(monthly / 30),
		WeightedYield:    formulas.Finite(weighted),
		AverageYield:     formulas.SafeDiv(weighted, summary.TotalInvested),
		LifetimeIncome:   formulas.Finite(lifetime),
		NextPayout:       nextPayout,
		NextPayoutAmount: formulas.Finite(monthly),
		DaysUntilPayout:  days,
		TotalProperties:  summary.TotalProperties,
	}
}

func dividendTotal(transactions []domain.Transaction) float64 {
	var total float64
	for _, t := range transactions {
		if t.IsDividend() {
			total += t.Amount
		}
	}
	return total
}

// perPropertyDividends sums each investment's dividends by property id
func perPropertyDividends(investments []domain.Investment, transactions []domain.Transaction) float64 {
	byProperty := make(map[string]float64)
	for _, t := range transactions {
		if t.IsDividend() && t.PropertyID != "" {
			byProperty[t.PropertyID] += t.Amount
		}
	}

	var total float64
	for _, inv := range investments {
		total += byProperty[inv.PropertyID]
	}
	return total
}

// endOfMonth returns midnight at the start of the last day of t's month
func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
