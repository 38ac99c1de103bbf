package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
)

// nextCmd holds the flags for the 'next' subcommand.
type nextCmd struct {
	frequency string
	from      string
	weekday   string
	day       int
	count     int
}

func (*nextCmd) Name() string     { return "next" }
func (*nextCmd) Synopsis() string { return "preview upcoming execution dates" }
func (*nextCmd) Usage() string {
	return `cbt next -frequency <frequency> [-from <date>] [-weekday <name> | -day <n>] [-count <n>]

  Prints the upcoming execution dates for a cadence and an optional day
  preference, starting from a date. Useful to check what a schedule
  would do before creating it.
`
}

func (c *nextCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.frequency, "frequency", "monthly", "Cadence: daily, weekly, biweekly, monthly, quarterly.")
	f.StringVar(&c.from, "from", costbasis.Today().String(), "Date to start from.")
	f.StringVar(&c.weekday, "weekday", "", "Preferred weekday for weekly schedules.")
	f.IntVar(&c.day, "day", 0, "Preferred day of the month for monthly schedules, capped at 28.")
	f.IntVar(&c.count, "count", 5, "Number of dates to print.")
}

func (c *nextCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	freq, err := costbasis.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	from, err := costbasis.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	pref, err := parsePreference(c.weekday, c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	on := costbasis.FirstDate(from, freq, pref)
	for i := 0; i < c.count; i++ {
		fmt.Printf("%s (%s)\n", on, on.Weekday())
		on = costbasis.NextDate(on, freq, pref)
	}
	return subcommands.ExitSuccess
}
