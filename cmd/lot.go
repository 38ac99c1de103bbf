package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
	"github.com/shopspring/decimal"
)

// lotCmd holds the flags for the 'lot' subcommand.
type lotCmd struct {
	symbol    string
	date      string
	shares    string
	price     string
	currency  string
	fx        string
	secondary string
}

func (*lotCmd) Name() string     { return "lot" }
func (*lotCmd) Synopsis() string { return "record a purchase lot" }
func (*lotCmd) Usage() string {
	return `cbt lot -symbol <symbol> -shares <shares> -price <price> [-date <date>] [-fx <rate> -secondary <currency>]

  Records one purchase as an immutable lot. The exchange rate, when
  given, is frozen into the lot (units of the purchase currency per one
  secondary unit). Corrections are new lots, not edits.
`
}

func (c *lotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Symbol of the purchased security.")
	f.StringVar(&c.date, "date", costbasis.Today().String(), "Purchase date.")
	f.StringVar(&c.shares, "shares", "", "Number of shares, fractional allowed.")
	f.StringVar(&c.price, "price", "", "Per-share price in the purchase currency.")
	f.StringVar(&c.currency, "currency", "USD", "Purchase currency.")
	f.StringVar(&c.fx, "fx", "1", "Exchange rate frozen at purchase time.")
	f.StringVar(&c.secondary, "secondary", "", "Secondary currency. Defaults to the purchase currency.")
}

func (c *lotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := costbasis.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	shares, err := parseQuantity(c.shares)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	price, err := parseAmount(c.price, c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fx, err := decimal.NewFromString(c.fx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fx rate: %v\n", err)
		return subcommands.ExitUsageError
	}
	secondary := c.secondary
	if secondary == "" {
		secondary = c.currency
	}

	lot, err := costbasis.NewLot(on, shares, price, fx, secondary)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required")
		return subcommands.ExitUsageError
	}
	return AppendLot(c.symbol, lot)
}
