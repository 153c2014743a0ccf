package portfolio

import (
	"testing"

	"github.com/domufi/analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, domain.PortfolioSummary{}, summary)
}

func TestSummarize(t *testing.T) {
	investments := []domain.Investment{
		{ID: "a", PropertyID: "p1", TotalInvested: 1000, CurrentValue: 1100, Tokens: 10},
		{ID: "b", PropertyID: "p1", TotalInvested: 500, CurrentValue: 450, Tokens: 5},
		{ID: "c", PropertyID: "p2", TotalInvested: 2500, CurrentValue: 2650, Tokens: 25},
	}

	summary := Summarize(investments)

	assert.Equal(t, 4000.0, summary.TotalInvested)
	assert.Equal(t, 4200.0, summary.CurrentValue)
	assert.Equal(t, 200.0, summary.TotalReturn)
	assert.InDelta(t, 5.0, summary.TotalReturnPct, 1e-9)
	assert.Equal(t, 2, summary.TotalProperties, "properties are counted once")
	assert.Equal(t, int64(40), summary.TotalTokens)
}

func TestSummarize_ZeroInvestedHasNoReturnPct(t *testing.T) {
	summary := Summarize([]domain.Investment{{ID: "a", PropertyID: "p1", CurrentValue: 50}})

	assert.Equal(t, 0.0, summary.TotalReturnPct)
	assert.Equal(t, 50.0, summary.TotalReturn)
}

func TestGroupByProperty(t *testing.T) {
	investments := []domain.Investment{
		{ID: "a", PropertyID: "p2", PropertyName: "Seattle Urban Lofts", TotalInvested: 300, Tokens: 3},
		{ID: "b", PropertyID: "p1", PropertyName: "Austin Hillside Villas", TotalInvested: 100, Tokens: 1},
		{ID: "c", PropertyID: "p2", PropertyName: "Seattle Urban Lofts", TotalInvested: 200, Tokens: 2},
	}

	holdings := GroupByProperty(investments)

	assert.Len(t, holdings, 2)
	assert.Equal(t, "p2", holdings[0].PropertyID)
	assert.Equal(t, 500.0, holdings[0].TotalInvested)
	assert.Equal(t, int64(5), holdings[0].Tokens)
	assert.Equal(t, 2, holdings[0].Investments)

	allocation := Allocation(investments)
	assert.Equal(t, []string{"Seattle Urban Lofts", "Austin Hillside Villas"}, allocation.Labels)
	assert.Equal(t, []float64{500, 100}, allocation.Data)
}
