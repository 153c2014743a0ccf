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

// calendarCmd holds the flags for the 'calendar' subcommand.
type calendarCmd struct {
	ledgerFile string
	grid       bool
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the projected payout calendar" }
func (*calendarCmd) Usage() string {
	return `domufi calendar [-l <ledger.json>] [-grid]

  Displays projected rental payouts for the current month and the eleven after it.
  With -grid the current month is drawn as a week grid.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "JSON ledger file instead of the ledger database")
	f.BoolVar(&c.grid, "grid", false, "draw the current month as a week grid")
}

func (c *calendarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dash, err := dashboardFor(ctx, c.ledgerFile, analytics.Range1M)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing calendar: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderCalendar(dash.Calendar, *currencyCode)
	if c.grid {
		for _, month := range dash.Calendar {
			if month.IsCurrent {
				md += "\n" + renderMonthGrid(month)
			}
		}
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// renderCalendar lists each month's payout day and projected income
func renderCalendar(months []analytics.MonthEntry, code string) string {
	var b strings.Builder
	b.WriteString("# Payout Calendar\n\n")
	b.WriteString("| Month | Payout day | Payments | Projected income |\n")
	b.WriteString("|:---|---:|---:|---:|\n")

	var total float64
	for _, month := range months {
		label := month.Label
		if month.IsCurrent {
			label = "**" + label + "**"
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", label, month.PayoutDay, month.PaymentCount, formatMoney(month.ProjectedIncome, code))
		total += month.ProjectedIncome
	}
	fmt.Fprintf(&b, "| Total | | | %s |\n", formatMoney(total, code))
	return b.String()
}

// renderMonthGrid draws one month as a Sunday-first week grid.
// The payout day is bold and today is marked with an asterisk.
func renderMonthGrid(month analytics.MonthEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", month.Label)
	b.WriteString("| Sun | Mon | Tue | Wed | Thu | Fri | Sat |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---:|\n")

	for i := 0; i < len(month.Cells); i += 7 {
		end := i + 7
		if end > len(month.Cells) {
			end = len(month.Cells)
		}
		row := make([]string, 7)
		for j, cell := range month.Cells[i:end] {
			row[j] = gridCell(cell)
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

func gridCell(cell analytics.CalendarCell) string {
	if cell.Empty {
		return ""
	}
	s := fmt.Sprintf("%d", cell.Day)
	if cell.IsPayoutDay {
		s = "**" + s + "**"
	}
	if cell.IsToday {
		s += "*"
	}
	return s
}
