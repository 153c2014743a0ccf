package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/domufi/analytics/internal/modules/analytics"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	ledgerFile string
	rng        string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the portfolio dashboard as a report" }
func (*reportCmd) Usage() string {
	return `domufi report [-l <ledger.json>] [-range 1M|3M|6M|1Y]

  Displays the portfolio summary, income, performance, health score,
  geography and diversification for the chosen chart range.
  Without -l the ledger database in DOMUFI_DATA_DIR is used.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "JSON ledger file to report on instead of the ledger database")
	f.StringVar(&c.rng, "range", string(analytics.Range1M), "chart range: 1M, 3M, 6M or 1Y")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := analytics.ParseRange(c.rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	dash, err := dashboardFor(ctx, c.ledgerFile, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing dashboard: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderReport(dash, *currencyCode))
	return subcommands.ExitSuccess
}

// renderReport formats the dashboard as markdown
func renderReport(d analytics.Dashboard, code string) string {
	var b strings.Builder
	m := func(v float64) string { return formatMoney(v, code) }

	fmt.Fprintf(&b, "# Portfolio Report (%s)\n\n", d.Series.Range)

	if d.Empty {
		b.WriteString("No investments yet. Import a ledger with `domufi import` to get started.\n")
		return b.String()
	}

	s := d.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| | |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Total invested | %s |\n", m(s.TotalInvested))
	fmt.Fprintf(&b, "| Current value | %s |\n", m(s.CurrentValue))
	fmt.Fprintf(&b, "| Total return | %s (%s) |\n", m(s.TotalReturn), formatSignedPct(s.TotalReturnPct))
	fmt.Fprintf(&b, "| Properties | %d |\n", s.TotalProperties)
	fmt.Fprintf(&b, "| Period change | %s (%s) |\n\n",
		m(d.Series.Period.PeriodChange), formatSignedPct(d.Series.Period.PeriodChangePercent))

	in := d.Income
	b.WriteString("## Income\n\n")
	b.WriteString("| | |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Monthly | %s |\n", m(in.MonthlyIncome))
	fmt.Fprintf(&b, "| Annual | %s |\n", m(in.AnnualIncome))
	fmt.Fprintf(&b, "| Daily | %s |\n", m(in.DailyIncome))
	fmt.Fprintf(&b, "| Weighted yield | %s |\n", formatPct(in.WeightedYield))
	fmt.Fprintf(&b, "| Lifetime dividends | %s |\n", m(in.LifetimeIncome))
	fmt.Fprintf(&b, "| Next payout | %s on %s (in %d days) |\n\n",
		m(in.NextPayoutAmount), in.NextPayout.Format("Jan 2, 2006"), in.DaysUntilPayout)

	if p := d.Performance; p != nil {
		b.WriteString("## Performance\n\n")
		b.WriteString("| | |\n|:---|---:|\n")
		fmt.Fprintf(&b, "| Average return | %s |\n", formatSignedPct(p.AvgReturn))
		fmt.Fprintf(&b, "| Annualized return | %s |\n", formatSignedPct(p.AnnualizedReturn))
		fmt.Fprintf(&b, "| Volatility | %s |\n", formatPct(p.Volatility))
		fmt.Fprintf(&b, "| Sharpe ratio | %.2f |\n", p.SharpeRatio)
		fmt.Fprintf(&b, "| Max drawdown | %s |\n", formatPct(p.MaxDrawdown))
		fmt.Fprintf(&b, "| Cap rate | %s |\n", formatPct(p.CapRate))
		fmt.Fprintf(&b, "| IRR | %s |\n", formatPct(p.IRR))
		fmt.Fprintf(&b, "| Average holding period | %.0f days |\n\n", p.AvgHoldingPeriod)
	}

	h := d.Health
	fmt.Fprintf(&b, "## Health: %d/100 (%s)\n\n", h.Overall, h.Status)
	b.WriteString("| Component | Score |\n|:---|---:|\n")
	fmt.Fprintf(&b, "| Diversification | %d |\n", h.Diversification)
	fmt.Fprintf(&b, "| Performance | %d |\n", h.Performance)
	fmt.Fprintf(&b, "| Income stability | %d |\n", h.IncomeStability)
	fmt.Fprintf(&b, "| Risk management | %d |\n\n", h.RiskManagement)
	for _, r := range h.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	if len(h.Recommendations) > 0 {
		b.WriteString("\n")
	}

	if len(d.Geography) > 0 {
		b.WriteString("## Geography\n\n")
		b.WriteString("| Region | Properties | Invested | Value | Avg ROI | Share |\n")
		b.WriteString("|:---|---:|---:|---:|---:|---:|\n")
		for _, g := range d.Geography {
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s |\n",
				g.Region, g.Properties, m(g.TotalInvested), m(g.TotalValue), formatPct(g.AvgROI), formatPct(g.SharePct))
		}
		b.WriteString("\n")
	}

	dv := d.Diversification
	fmt.Fprintf(&b, "## Diversification: %s (%d)\n\n", dv.Label, dv.Score)
	fmt.Fprintf(&b, "%d properties across %d locations, balance ratio %.2f.\n", dv.Properties, dv.Locations, dv.BalanceRatio)

	return b.String()
}
