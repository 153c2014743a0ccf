package analytics

import (
	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/modules/portfolio"
)

// Dashboard bundles every view computed from one ledger snapshot
type Dashboard struct {
	Empty           bool                    `json:"empty"`
	Summary         domain.PortfolioSummary `json:"summary"`
	Income          IncomeMetrics           `json:"income"`
	Performance     *PerformanceMetrics     `json:"performance"`
	Health          HealthScore             `json:"health"`
	Series          SeriesSet               `json:"series"`
	Geography       []GeoGroup              `json:"geography"`
	Calendar        []MonthEntry            `json:"calendar"`
	Allocation      domain.Series           `json:"allocation"`
	Diversification DiversificationGrade    `json:"diversification"`
}

// Dashboard computes all views for the ledger. Performance is nil for an empty ledger.
func (e *Engine) Dashboard(ledger domain.Ledger, r Range) Dashboard {
	investments, transactions := ledger.Investments, ledger.Transactions

	summary := portfolio.Summarize(investments)
	income := e.ComputeIncome(investments, transactions)
	perf := e.ComputePerformance(investments, summary, income)

	return Dashboard{
		Empty:           ledger.IsEmpty(),
		Summary:         summary,
		Income:          income,
		Performance:     perf,
		Health:          e.ComputeHealth(summary, perf, income),
		Series:          e.ReconstructSeries(investments, transactions, income, r),
		Geography:       e.AggregateGeography(investments),
		Calendar:        e.BuildPayoutCalendar(income, len(investments)),
		Allocation:      portfolio.Allocation(investments),
		Diversification: GradeDiversification(investments),
	}
}
