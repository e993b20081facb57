package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/payments/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type reportCmd struct {
	engineFlags
	currency string
	html     bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "process a transactions file and render a readable report" }
func (*reportCmd) Usage() string {
	return `pay report [-currency <code>] [-html] [-serial] [-queue <n>] <transactions.csv>

  Processes the transactions file like 'pay process' and renders a report:
  the table of accounts and a summary of the rejected records by reason.

  With -currency, amounts are displayed in that currency (e.g. USD, EUR),
  rounded to its minor unit. The report is rendered for the terminal, or
  as an HTML fragment with -html.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.engineFlags.SetFlags(f)
	f.StringVar(&c.currency, "currency", "", "Display amounts in this currency (ISO 4217 code).")
	f.BoolVar(&c.html, "html", false, "Render the report as HTML.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := processFile(ctx, f.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := renderer.NewReport(res, filepath.Base(f.Arg(0)), c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	md := renderer.RenderReport(report)

	if !c.html {
		printMarkdown(md)
		return subcommands.ExitSuccess
	}
	html, err := markdownToHTML(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering HTML: %v\n", err)
		return subcommands.ExitFailure
	}
	os.Stdout.Write(html)
	return subcommands.ExitSuccess
}

// markdownToHTML converts GitHub flavored markdown, tables included, to HTML.
func markdownToHTML(md string) ([]byte, error) {
	var buf bytes.Buffer
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert([]byte(md), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
