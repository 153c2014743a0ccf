package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/modules/analytics"
)

// goalCmd holds the flags for the 'goal' subcommand.
type goalCmd struct{}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "list goals or set a goal target" }
func (*goalCmd) Usage() string {
	return `domufi goal [<goal-id> <target>]

  Without arguments, lists every goal with its current value and progress.
  With a goal id and a positive target, stores the new target first.
  Goal ids: ` + strings.Join(analytics.GoalIDs, ", ") + `
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {}

func (c *goalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 && f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected no arguments or <goal-id> <target>")
		return subcommands.ExitUsageError
	}

	container, err := openContainer(ctx, newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening databases: %v\n", err)
		return subcommands.ExitFailure
	}
	defer container.Close()

	if f.NArg() == 2 {
		target, err := strconv.ParseFloat(f.Arg(1), 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid target %q\n", f.Arg(1))
			return subcommands.ExitUsageError
		}
		if err := container.GoalService.SetTarget(ctx, f.Arg(0), target); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting goal: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	goals, err := container.GoalService.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing goals: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderGoals(goals, *currencyCode))
	return subcommands.ExitSuccess
}

// renderGoals formats goals as a markdown table. Currency goals use the money formatter.
func renderGoals(goals []domain.Goal, code string) string {
	var b strings.Builder
	b.WriteString("# Goals\n\n")
	b.WriteString("| Goal | Current | Target | Progress |\n")
	b.WriteString("|:---|---:|---:|---:|\n")

	for _, g := range goals {
		current, target := goalValue(g.Current, g.Unit, code), goalValue(g.Target, g.Unit, code)
		if g.Custom {
			target += " (custom)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %.0f%% |\n", g.Label, current, target, g.Progress)
	}
	return b.String()
}

func goalValue(v float64, unit, code string) string {
	if unit == "$" {
		return formatMoney(v, code)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
