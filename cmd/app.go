// Package cmd implements the cbt command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
)

// Commands lists every subcommand of the application.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&lotCmd{},
	&summaryCmd{},
	&fmtCmd{},
	&nextCmd{},
	&scheduleCmd{},
	&schedulesCmd{},
	&pauseCmd{},
	&resumeCmd{},
	&cancelCmd{},
	&simulateCmd{},
	&projectCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "lots.jsonl", "Path to the purchase lots file (JSONL format)")
var scheduleFile = flag.String("schedule-file", "schedules.jsonl", "Path to the schedules file (JSONL format)")

// DecodeLotLedgerFile loads the lot ledger from the app ledger file.
func DecodeLotLedgerFile() (*costbasis.LotLedger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting with an empty ledger")
		return costbasis.NewLotLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return costbasis.DecodeLotLedger(f)
}

// AppendLot appends a single lot to the app ledger file.
func AppendLot(symbol string, lot costbasis.Lot) subcommands.ExitStatus {
	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := costbasis.EncodeLot(f, symbol, lot); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended lot to %s\n", filename)
	return subcommands.ExitSuccess
}

// DecodeScheduleBookFile loads the schedule book from the app schedule file.
func DecodeScheduleBookFile() (*costbasis.ScheduleBook, error) {
	f, err := os.Open(*scheduleFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, schedule file does not exist, starting with an empty book")
		return &costbasis.ScheduleBook{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return costbasis.DecodeScheduleBook(f)
}

// EncodeLotLedgerFile rewrites the app ledger file whole.
func EncodeLotLedgerFile(ledger *costbasis.LotLedger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return costbasis.EncodeLotLedger(f, ledger)
}

// EncodeScheduleBookFile rewrites the app schedule file whole.
func EncodeScheduleBookFile(book *costbasis.ScheduleBook) error {
	f, err := os.Create(*scheduleFile)
	if err != nil {
		return fmt.Errorf("could not write schedule file %q: %w", *scheduleFile, err)
	}
	defer f.Close()
	return costbasis.EncodeScheduleBook(f, book)
}
