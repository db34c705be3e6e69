package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct {
	portfolio string
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "validate and rewrite portfolio files in canonical form" }
func (*fmtCmd) Usage() string {
	return `fol fmt [-p <portfolio>]

  Reads portfolio files, validates every ledger against short sales, and
  writes them back in canonical JSONL form. Formats all portfolios by
  default; -p restricts the pass to one.

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to format. Formats all by default.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}

	names := []string{c.portfolio}
	if c.portfolio == "" {
		if names, err = store.ListPortfolios(); err != nil {
			return fail(err)
		}
	}
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "no portfolios found to format")
		return subcommands.ExitSuccess
	}

	for _, name := range names {
		p, err := store.LoadPortfolio(name)
		if err != nil {
			return fail(fmt.Errorf("formatting %q: %w", name, err))
		}
		if err := store.SavePortfolio(p); err != nil {
			return fail(fmt.Errorf("formatting %q: %w", name, err))
		}
		fmt.Printf("formatted %q\n", name)
	}
	return subcommands.ExitSuccess
}
