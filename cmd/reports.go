package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/perriv/folio"
	"github.com/perriv/folio/renderer"
)

type valueCmd struct {
	portfolio string
	date      string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value a portfolio as of a past date" }
func (*valueCmd) Usage() string {
	return `fol value -p <portfolio> [-d <date>]

  Values every held position at the stored market price on the date.
  The date must be in the past.

`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to value.")
	f.StringVar(&c.date, "d", "-1d", "Valuation date (defaults to yesterday).")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, p, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}
	on, err := folio.ParseDate(c.date)
	if err != nil {
		return fail(err)
	}
	_, market, err := loadMarketData()
	if err != nil {
		return fail(err)
	}
	value, err := p.ValueOn(on, market)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s on %s: %s\n", c.portfolio, on, renderer.Amount(value.InexactFloat64()))
	return subcommands.ExitSuccess
}

type costCmd struct {
	portfolio string
	date      string
}

func (*costCmd) Name() string     { return "cost" }
func (*costCmd) Synopsis() string { return "compute the cost basis of a portfolio as of a past date" }
func (*costCmd) Usage() string {
	return `fol cost -p <portfolio> [-d <date>]

  Sums the gross amount of every buy plus the commission of every trade
  up to the date.

`
}

func (c *costCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to report on.")
	f.StringVar(&c.date, "d", "-1d", "Cost basis date (defaults to yesterday).")
}

func (c *costCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, p, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}
	on, err := folio.ParseDate(c.date)
	if err != nil {
		return fail(err)
	}
	cost, err := p.CostBasisOn(on)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s cost basis on %s: %s\n", c.portfolio, on, renderer.Amount(cost.InexactFloat64()))
	return subcommands.ExitSuccess
}

type holdingCmd struct {
	portfolio string
	date      string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "reconstruct the composition of a portfolio on a date" }
func (*holdingCmd) Usage() string {
	return `fol holding -p <portfolio> [-d <date>]

  Prints one row per security held on the date: quantity, weighted average
  price and last trade date.

`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to report on.")
	f.StringVar(&c.date, "d", "0d", "Composition date (defaults to today).")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, p, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}
	on, err := folio.ParseDate(c.date)
	if err != nil {
		return fail(err)
	}
	fmt.Print(renderer.Composition(p.CompositionOn(on)))
	return subcommands.ExitSuccess
}
