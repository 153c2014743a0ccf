package analytics

import (
	"math"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/pkg/formulas"
)

// Recommendation texts, one per health dimension
const (
	RecommendDiversify    = "Consider diversifying into more properties"
	RecommendReview       = "Review underperforming properties"
	RecommendStableYields = "Focus on stable rental yields"
	RecommendLowerRisk    = "Consider lower volatility properties"
	RecommendBalanced     = "Portfolio is well-balanced!"
)

// Health status labels
const (
	StatusExcellent        = "Excellent"
	StatusGood             = "Good"
	StatusNeedsImprovement = "Needs Improvement"
)

const (
	recommendThreshold = 70
	neutralRiskScore   = 50
)

// HealthScore is the composite 0-100 portfolio score.
// The performance sub-score is negative when the annualized return is negative;
// Overall is always within [0, 100].
type HealthScore struct {
	Overall         int      `json:"overall"`
	Diversification int      `json:"diversification"`
	Performance     int      `json:"performance"`
	IncomeStability int      `json:"income_stability"`
	RiskManagement  int      `json:"risk_management"`
	Status          string   `json:"status"`
	Recommendations []string `json:"recommendations"`
}

// ComputeHealth scores diversification, performance, income stability and risk.
// perf may be nil for an empty portfolio, which scores performance at 0 and risk as neutral.
func (e *Engine) ComputeHealth(summary domain.PortfolioSummary, perf *PerformanceMetrics, income IncomeMetrics) HealthScore {
	diversification := math.Min(100, float64(summary.TotalProperties)/e.opts.TargetProperties*100)

	var performance float64
	risk := float64(neutralRiskScore)
	if perf != nil {
		performance = math.Min(100, perf.AnnualizedReturn/e.opts.TargetReturn*100)
		risk = math.Max(0, 100-perf.Volatility*2-perf.MaxDrawdown)
	}

	var stability float64
	if income.AverageYield > 0 {
		stability = math.Min(100, income.AverageYield/e.opts.TargetYield*100)
	}

	scores := []float64{
		formulas.Finite(diversification),
		formulas.Finite(performance),
		formulas.Finite(stability),
		formulas.Finite(risk),
	}
	overall := roundScore(formulas.Clamp(formulas.Mean(scores), 0, 100))

	return HealthScore{
		Overall:         overall,
		Diversification: roundScore(scores[0]),
		Performance:     roundScore(scores[1]),
		IncomeStability: roundScore(scores[2]),
		RiskManagement:  roundScore(scores[3]),
		Status:          healthStatus(overall),
		Recommendations: recommendations(scores),
	}
}

// recommendations expects scores in the order diversification, performance, income stability, risk
func recommendations(scores []float64) []string {
	advice := []string{RecommendDiversify, RecommendReview, RecommendStableYields, RecommendLowerRisk}

	var out []string
	for i, s := range scores {
		if s < recommendThreshold {
			out = append(out, advice[i])
		}
	}
	if len(out) == 0 {
		out = append(out, RecommendBalanced)
	}
	return out
}

func healthStatus(overall int) string {
	switch {
	case overall >= 80:
		return StatusExcellent
	case overall >= 60:
		return StatusGood
	default:
		return StatusNeedsImprovement
	}
}

// roundScore rounds halves up, matching how scores are displayed
func roundScore(v float64) int {
	return int(math.Floor(v + 0.5))
}
