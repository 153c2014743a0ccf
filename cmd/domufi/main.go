// Command domufi is the operator CLI for the analytics service.
// It renders dashboard reports and payout calendars as terminal markdown,
// imports JSON ledgers into the ledger database and manages goal targets.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&reportCmd{}, "analytics")
	commander.Register(&calendarCmd{}, "analytics")
	commander.Register(&importCmd{}, "ledger")
	commander.Register(&goalCmd{}, "ledger")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
