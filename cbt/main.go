package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/openfolio/costbasis/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: must run before flag.Parse, it exits by itself
	// when invoked by the shell completion machinery.
	subs := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		subs[c.Name()] = &complete.Command{}
	}
	completion := &complete.Command{
		Sub: subs,
		Flags: map[string]complete.Predictor{
			"ledger-file":   predict.Files("*.jsonl"),
			"schedule-file": predict.Files("*.jsonl"),
		},
	}
	completion.Complete("cbt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
