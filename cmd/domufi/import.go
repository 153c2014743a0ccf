package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/domufi/analytics/internal/modules/ledger"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSON ledger into the ledger database" }
func (*importCmd) Usage() string {
	return `domufi import <ledger.json>...

  Loads each JSON ledger ({"investments": [...], "transactions": [...]}) and
  appends its records to the ledger database. Records whose id already exists
  are skipped, so importing the same file twice is harmless.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one ledger file is required")
		return subcommands.ExitUsageError
	}

	container, err := openContainer(ctx, newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer container.Close()

	for _, path := range f.Args() {
		l, err := ledger.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}

		investments, transactions, err := container.LedgerService.Import(ctx, l)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "%s: imported %d investments and %d transactions\n", path, investments, transactions)
	}

	return subcommands.ExitSuccess
}
