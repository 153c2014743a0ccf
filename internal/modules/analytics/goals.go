package analytics

import (
	"math"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/pkg/formulas"
)

// Goal identifiers
const (
	GoalPropertiesOwned = "properties-owned"
	GoalPortfolioValue  = "portfolio-value"
	GoalMonthlyIncome   = "monthly-income"
)

// GoalIDs lists the known goals in display order
var GoalIDs = []string{GoalPropertiesOwned, GoalPortfolioValue, GoalMonthlyIncome}

// IsGoalID reports whether id names a known goal
func IsGoalID(id string) bool {
	for _, g := range GoalIDs {
		if g == id {
			return true
		}
	}
	return false
}

// BuildGoals derives every goal's current value from the ledger aggregates.
// targets holds user-set targets keyed by goal id; goals without one get a default
// that scales with the portfolio. Current values are never taken from targets.
func BuildGoals(summary domain.PortfolioSummary, income IncomeMetrics, targets map[string]float64) []domain.Goal {
	defaults := map[string]float64{
		GoalPropertiesOwned: math.Max(float64(summary.TotalProperties+5), 10),
		GoalPortfolioValue:  math.Max(summary.TotalInvested*2, 50000),
		GoalMonthlyIncome:   math.Max(income.MonthlyIncome*2, 1000),
	}

	goals := []domain.Goal{
		{ID: GoalPropertiesOwned, Label: "Properties Owned", Current: float64(summary.TotalProperties)},
		{ID: GoalPortfolioValue, Label: "Portfolio Value", Unit: "$", Current: formulas.RoundMoney(summary.CurrentValue)},
		{ID: GoalMonthlyIncome, Label: "Monthly Income", Unit: "$", Current: formulas.RoundMoney(income.MonthlyIncome)},
	}

	for i := range goals {
		g := &goals[i]
		g.Target = defaults[g.ID]
		if t, ok := targets[g.ID]; ok && t > 0 {
			g.Target = t
			g.Custom = true
		}
		g.Progress = formulas.RoundMoney(math.Min(100, formulas.SafeDiv(g.Current, g.Target)*100))
	}
	return goals
}
