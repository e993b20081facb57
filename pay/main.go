package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/payments/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	flag.Parse()
	// 'pay <file>' is a shorthand for 'pay process <file>'.
	if flag.NArg() > 0 && !cmd.IsCommand(flag.Arg(0)) {
		flag.CommandLine.Parse(append([]string{"process"}, flag.Args()...))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
