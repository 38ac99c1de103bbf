package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
	"github.com/openfolio/costbasis/renderer"
	"github.com/shopspring/decimal"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	symbol string
	date   string
	price  string
	fx     string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the cost basis of a symbol" }
func (*summaryCmd) Usage() string {
	return `cbt summary -symbol <symbol> [-date <date>] [-price <price>] [-fx <rate>]

  Aggregates the purchase lots of a symbol as of a date: totals,
  averages, and the short/long-term tax split. With -price, also the
  market value and unrealized gain; without it, those are reported as
  absent, never as break-even.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Symbol to summarize.")
	f.StringVar(&c.date, "date", costbasis.Today().String(), "Report date for the tax classification.")
	f.StringVar(&c.price, "price", "", "Current per-share price, if known.")
	f.StringVar(&c.fx, "fx", "", "Current exchange rate, if known.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required")
		return subcommands.ExitUsageError
	}
	asOf, err := costbasis.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLotLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var quote *costbasis.Quote
	if c.price != "" {
		lots := ledger.Lots(c.symbol)
		currency := "USD"
		if len(lots) > 0 {
			currency = lots[0].Price.Currency()
		}
		price, err := parseAmount(c.price, currency)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		quote = &costbasis.Quote{Price: price}
		if c.fx != "" {
			fx, err := decimal.NewFromString(c.fx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing fx rate: %v\n", err)
				return subcommands.ExitUsageError
			}
			quote.FXRate = fx
		}
	}

	s := costbasis.Summarize(c.symbol, ledger.LotsByDate(c.symbol, true), asOf, quote)
	printMarkdown(renderer.RenderSummary(s))
	return subcommands.ExitSuccess
}
