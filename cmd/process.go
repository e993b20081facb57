package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

type processCmd struct {
	engineFlags
	format string
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "process a transactions file and print the accounts" }
func (*processCmd) Usage() string {
	return `pay process [-serial] [-queue <n>] [-format csv|json|table] [-log-level <level>] <transactions.csv>

  Reads the transactions file (header: type,client,tx,amount), applies every
  deposit, withdrawal, dispute, resolve and chargeback, and prints the final
  account of each client on stdout (header: client,available,held,total,locked).

  Malformed or refused records are skipped; use -log-level debug to see why.
  'pay <transactions.csv>' is a shorthand for this command.

Usage Examples:
# Print the accounts as CSV.
$ pay process transactions.csv > accounts.csv

# Read the accounts in the terminal, applying one transaction at a time.
$ pay process -serial -format table transactions.csv

`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	c.engineFlags.SetFlags(f)
	f.StringVar(&c.format, "format", "csv", "Output format: csv, json or table.")
}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	encode := payments.EncodeSnapshots
	switch c.format {
	case "csv":
	case "json":
		encode = payments.EncodeSnapshotsJSON
	case "table":
		encode = encodeTable
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := processFile(ctx, f.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := encode(os.Stdout, res.Snapshots); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
