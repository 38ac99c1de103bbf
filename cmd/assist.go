package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
	"github.com/openfolio/costbasis/agent"
	"github.com/openfolio/costbasis/renderer"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `cbt assist [question]

  Starts an interactive session with an assistant that has the current
  cost basis reports loaded as context. Requires Gemini credentials in
  the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	ledger, err := DecodeLotLedgerFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	// one report per symbol, without market data: the assistant reasons
	// on cost, not on prices it does not have
	today := costbasis.Today()
	var reports []string
	for _, symbol := range ledger.Symbols() {
		s := costbasis.Summarize(symbol, ledger.LotsByDate(symbol, true), today, nil)
		reports = append(reports, renderer.RenderSummary(s))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := agent.NewAdvisor(reports...)
	if err := a.Run(ctx, client, initialPrompt, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
