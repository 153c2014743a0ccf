// Package portfolio derives ledger-wide aggregates shared by every analytics view.
package portfolio

import (
	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/pkg/formulas"
)

// Summarize aggregates all investments into a PortfolioSummary.
// Properties are counted by distinct PropertyID, so several purchases of the
// same property count once.
func Summarize(investments []domain.Investment) domain.PortfolioSummary {
	var summary domain.PortfolioSummary
	properties := make(map[string]struct{}, len(investments))

	for _, inv := range investments {
		summary.TotalInvested += inv.TotalInvested
		summary.CurrentValue += inv.CurrentValue
		summary.TotalTokens += inv.Tokens
		properties[propertyKey(inv)] = struct{}{}
	}

	summary.TotalProperties = len(properties)
	summary.TotalReturn = summary.CurrentValue - summary.TotalInvested
	summary.TotalReturnPct = formulas.ReturnPct(summary.TotalInvested, summary.CurrentValue)
	return summary
}

// PropertyHolding is the per-property rollup of one or more investments
type PropertyHolding struct {
	PropertyID    string  `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	Location      string  `json:"location"`
	TotalInvested float64 `json:"total_invested"`
	CurrentValue  float64 `json:"current_value"`
	Tokens        int64   `json:"tokens"`
	Investments   int     `json:"investments"`
}

// GroupByProperty rolls investments up per property, preserving first-seen order.
func GroupByProperty(investments []domain.Investment) []PropertyHolding {
	index := make(map[string]int, len(investments))
	holdings := make([]PropertyHolding, 0, len(investments))

	for _, inv := range investments {
		key := propertyKey(inv)
		i, ok := index[key]
		if !ok {
			i = len(holdings)
			index[key] = i
			holdings = append(holdings, PropertyHolding{
				PropertyID:   inv.PropertyID,
				PropertyName: inv.PropertyName,
				Location:     inv.Location,
			})
		}
		h := &holdings[i]
		h.TotalInvested += inv.TotalInvested
		h.CurrentValue += inv.CurrentValue
		h.Tokens += inv.Tokens
		h.Investments++
	}
	return holdings
}

// Allocation returns the invested amount per property as a chart series.
func Allocation(investments []domain.Investment) domain.Series {
	holdings := GroupByProperty(investments)
	series := domain.Series{
		Labels: make([]string, 0, len(holdings)),
		Data:   make([]float64, 0, len(holdings)),
	}
	for _, h := range holdings {
		series.Labels = append(series.Labels, h.PropertyName)
		series.Data = append(series.Data, formulas.RoundMoney(h.TotalInvested))
	}
	return series
}

// investments without a property id are counted individually
func propertyKey(inv domain.Investment) string {
	if inv.PropertyID == "" {
		return "investment:" + inv.ID
	}
	return inv.PropertyID
}
