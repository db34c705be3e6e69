package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/perriv/folio"
)

type createCmd struct {
	portfolio string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new empty portfolio" }
func (*createCmd) Usage() string {
	return `fol create -p <portfolio>

  Creates a new empty portfolio in the store.

`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Name of the portfolio to create.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.portfolio == "" {
		return fail(fmt.Errorf("missing -p portfolio name"))
	}
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	if _, err := store.LoadPortfolio(c.portfolio); err == nil {
		return fail(fmt.Errorf("portfolio %q already exists", c.portfolio))
	}
	p := folio.NewPortfolio(c.portfolio, folio.Today())
	if err := store.SavePortfolio(p); err != nil {
		return fail(err)
	}
	fmt.Printf("created portfolio %q\n", c.portfolio)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	portfolio string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a portfolio and all its ledgers" }
func (*deleteCmd) Usage() string {
	return `fol delete -p <portfolio>

  Deletes a whole portfolio. Individual ledgers are never deleted on their
  own, only as part of their portfolio.

`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Name of the portfolio to delete.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, _, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}
	if err := store.DeletePortfolio(c.portfolio); err != nil {
		return fail(err)
	}
	fmt.Printf("deleted portfolio %q\n", c.portfolio)
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string             { return "list" }
func (*listCmd) Synopsis() string         { return "list the portfolios in the store" }
func (*listCmd) Usage() string            { return "fol list\n\n  Lists stored portfolios.\n\n" }
func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		return fail(err)
	}
	names, err := store.ListPortfolios()
	if err != nil {
		return fail(err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}
