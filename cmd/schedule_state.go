package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis"
)

// transition applies one state change to a schedule identified by its ID,
// and persists the book. The pause, resume and cancel subcommands only
// differ by the transition they apply.
func transition(f *flag.FlagSet, apply func(*costbasis.Schedule) error) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one schedule ID")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	book, err := DecodeScheduleBookFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding schedules: %v\n", err)
		return subcommands.ExitFailure
	}
	s := book.Get(id)
	if s == nil {
		fmt.Fprintf(os.Stderr, "Error: no schedule %q\n", id)
		return subcommands.ExitFailure
	}
	if err := apply(s); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodeScheduleBookFile(book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Schedule %s is now %s\n", s.ID, s.Status)
	return subcommands.ExitSuccess
}

type pauseCmd struct{}

func (*pauseCmd) Name() string     { return "pause" }
func (*pauseCmd) Synopsis() string { return "pause an active schedule" }
func (*pauseCmd) Usage() string {
	return `cbt pause <schedule-id>

  Freezes an active schedule. No executions happen until it is resumed.
`
}
func (*pauseCmd) SetFlags(f *flag.FlagSet) {}
func (c *pauseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return transition(f, func(s *costbasis.Schedule) error { return s.Pause() })
}

type resumeCmd struct{}

func (*resumeCmd) Name() string     { return "resume" }
func (*resumeCmd) Synopsis() string { return "resume a paused schedule" }
func (*resumeCmd) Usage() string {
	return `cbt resume <schedule-id>

  Reactivates a paused schedule. The next execution date is recomputed
  from today; the stale pre-pause date is never executed.
`
}
func (*resumeCmd) SetFlags(f *flag.FlagSet) {}
func (c *resumeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return transition(f, func(s *costbasis.Schedule) error { return s.Resume(costbasis.Today()) })
}

type cancelCmd struct{}

func (*cancelCmd) Name() string     { return "cancel" }
func (*cancelCmd) Synopsis() string { return "cancel a schedule permanently" }
func (*cancelCmd) Usage() string {
	return `cbt cancel <schedule-id>

  Terminates an active or paused schedule. This is final.
`
}
func (*cancelCmd) SetFlags(f *flag.FlagSet) {}
func (c *cancelCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return transition(f, func(s *costbasis.Schedule) error { return s.Cancel() })
}
