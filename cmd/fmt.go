package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the data files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cbt fmt

  Reads the ledger and schedule files, re-checks every record's
  invariants, and writes them back in canonical JSONL form: lots sorted
  by purchase date within each symbol, schedules before executions.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLotLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load the ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	canonical := costbasis.NewLotLedger()
	for _, symbol := range ledger.Symbols() {
		for _, lot := range ledger.LotsByDate(symbol, true) {
			if err := canonical.AddLot(symbol, lot); err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid lot for %q: %v\n", symbol, err)
				return subcommands.ExitFailure
			}
		}
	}
	if err := EncodeLotLedgerFile(canonical); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	book, err := DecodeScheduleBookFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load the schedules: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeScheduleBookFile(book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %s and %s.\n", *ledgerFile, *scheduleFile)
	return subcommands.ExitSuccess
}
