package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
)

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	account   string
	amount    string
	currency  string
	frequency string
	weekday   string
	day       int
	start     string
	end       string
	max       int
	alloc     string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "create a recurring purchase schedule" }
func (*scheduleCmd) Usage() string {
	return `cbt schedule -account <account> -amount <amount> -alloc <SYMBOL=WEIGHT,...> [-frequency <frequency>] [-weekday <name> | -day <n>] [-start <date>] [-end <date>] [-max <n>]

  Creates an active schedule investing a fixed amount at a fixed
  cadence, split across symbols by percentage. The weights must sum
  to 100.

Usage Examples:
# $100 in VTI every month on the 15th.
$ cbt schedule -account brokerage -amount 100 -alloc VTI=100 -frequency monthly -day 15
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account the schedule buys into.")
	f.StringVar(&c.amount, "amount", "", "Amount invested per execution.")
	f.StringVar(&c.currency, "currency", "USD", "Currency of the amount.")
	f.StringVar(&c.frequency, "frequency", "monthly", "Cadence: daily, weekly, biweekly, monthly, quarterly.")
	f.StringVar(&c.weekday, "weekday", "", "Preferred weekday for weekly schedules.")
	f.IntVar(&c.day, "day", 0, "Preferred day of the month for monthly schedules, capped at 28.")
	f.StringVar(&c.start, "start", costbasis.Today().String(), "First date the schedule may execute.")
	f.StringVar(&c.end, "end", "", "Last date the schedule may execute. Empty means open-ended.")
	f.IntVar(&c.max, "max", 0, "Maximum number of executions. 0 means unlimited.")
	f.StringVar(&c.alloc, "alloc", "", "Allocations as SYMBOL=WEIGHT pairs, comma separated.")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := parseAmount(c.amount, c.currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	freq, err := costbasis.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	pref, err := parsePreference(c.weekday, c.day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	start, err := costbasis.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	allocations, err := parseAllocations(c.alloc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	s, err := costbasis.NewSchedule(c.account, allocations, amount, freq, pref, start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.end != "" {
		end, err := costbasis.ParseDate(c.end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		s.End = end
	}
	s.MaxExecutions = c.max

	book, err := DecodeScheduleBookFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding schedules: %v\n", err)
		return subcommands.ExitFailure
	}
	book.Schedules = append(book.Schedules, s)
	if err := EncodeScheduleBookFile(book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created schedule %s, next execution on %s\n", s.ID, s.Next)
	return subcommands.ExitSuccess
}

// schedulesCmd holds the flags for the 'schedules' subcommand.
type schedulesCmd struct{}

func (*schedulesCmd) Name() string     { return "schedules" }
func (*schedulesCmd) Synopsis() string { return "list the recurring purchase schedules" }
func (*schedulesCmd) Usage() string {
	return `cbt schedules

  Lists every schedule with its cadence, status, next execution date
  and cumulative invested amount.
`
}

func (*schedulesCmd) SetFlags(f *flag.FlagSet) {}

func (c *schedulesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeScheduleBookFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding schedules: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Schedules\n\n")
	fmt.Fprintln(&b, "| ID | Account | Allocations | Amount | Frequency | Status | Next | Invested |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|:---|:---|---:|")
	for _, s := range book.Schedules {
		var allocs []string
		for _, a := range s.Allocations {
			allocs = append(allocs, fmt.Sprintf("%s %s", a.Symbol, a.Weight))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			s.ID, s.Account, strings.Join(allocs, ", "),
			s.Amount, s.Frequency, s.Status, s.Next, s.Invested)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
