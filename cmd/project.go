package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
	"github.com/openfolio/costbasis/renderer"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	id           string
	months       int
	annualReturn float64
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project a schedule forward at an assumed return" }
func (*projectCmd) Usage() string {
	return `cbt project [-id <schedule-id>] [-months <n>] [-return <percent>]

  Compounds a schedule's contributions monthly at an assumed constant
  annual return, with a flat ±10% band around each projected value.
  This is an illustration, not a forecast. Without -id, the only
  schedule in the file is used.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Schedule to project. Defaults to the only schedule if one exists.")
	f.IntVar(&c.months, "months", 12, "Projection horizon in months.")
	f.Float64Var(&c.annualReturn, "return", 7, "Assumed constant annual return, in percent.")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeScheduleBookFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding schedules: %v\n", err)
		return subcommands.ExitFailure
	}

	var s *costbasis.Schedule
	switch {
	case c.id != "":
		s = book.Get(c.id)
		if s == nil {
			fmt.Fprintf(os.Stderr, "Error: no schedule %q\n", c.id)
			return subcommands.ExitFailure
		}
	case len(book.Schedules) == 1:
		s = book.Schedules[0]
	default:
		fmt.Fprintf(os.Stderr, "Error: %d schedules found, use -id to pick one\n", len(book.Schedules))
		return subcommands.ExitUsageError
	}

	p, err := costbasis.Project(s, c.months, costbasis.Percent(c.annualReturn), costbasis.Today())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProjection(p))
	return subcommands.ExitSuccess
}
