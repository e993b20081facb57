package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payments/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `pay topic [<topic>...]

Show documentation for the given topics. Without topic, show the list of topics.
Use '*' for all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var doc string
	var err error
	if f.NArg() == 0 {
		doc, err = docs.Index()
	} else {
		doc, err = docs.GetTopics(f.Args()...)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
