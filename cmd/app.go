// Package cmd implements the CLI application to process transaction files.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/etnz/payments"
	"github.com/google/subcommands"
)

// Commands lists the application commands, in the order they are documented.
var Commands = []subcommands.Command{
	&processCmd{},
	&reportCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
	c.Register(c.CommandsCommand(), "help")
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// IsCommand reports whether name is a registered command name.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, c := range Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// processFile runs the engine over the transaction file at path.
func processFile(ctx context.Context, path string, opts payments.Options) (*payments.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open transactions file: %w", err)
	}
	defer f.Close()

	res, err := payments.Process(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("could not process %q: %w", path, err)
	}
	return res, nil
}
