package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/perriv/folio"
)

type declareCmd struct {
	ticker   string
	name     string
	exchange string
	currency string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "add a security to the price universe" }
func (*declareCmd) Usage() string {
	return `fol declare -s <ticker> [-name <name>] [-x <exchange>] [-cur <currency>]

  Declares a security in the market data store so its prices can be fetched
  and portfolios referencing it can be valued.

`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "Security ticker, e.g. AAPL.US.")
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.exchange, "x", "", "Exchange code.")
	f.StringVar(&c.currency, "cur", "USD", "Quotation currency.")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		return fail(fmt.Errorf("missing -s ticker"))
	}
	store, market, err := loadMarketData()
	if err != nil {
		return fail(err)
	}
	market.Add(folio.NewSecurity(c.ticker, c.name, c.exchange, c.currency))
	if err := store.SaveMarketData(market); err != nil {
		return fail(err)
	}
	fmt.Printf("declared %s\n", c.ticker)
	return subcommands.ExitSuccess
}

type updateCmd struct {
	from string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch end-of-day prices for all declared securities" }
func (*updateCmd) Usage() string {
	return `fol update [-from <date>]

  Fetches daily close prices from EODHD for every declared security, resuming
  each series after its latest stored day. Requires an API key in the
  -eodhd-api-key flag or the EODHD_API_KEY environment variable.

`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "-1y", "First date to fetch for securities without stored prices.")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, market, err := loadMarketData()
	if err != nil {
		return fail(err)
	}
	from, err := folio.ParseDate(c.from)
	if err != nil {
		return fail(err)
	}

	client := folio.NewEODHDClient("")
	if err := client.Update(market, from); err != nil {
		// Keep whatever was fetched, but report the failures.
		if saveErr := store.SaveMarketData(market); saveErr != nil {
			return fail(saveErr)
		}
		return fail(err)
	}
	if err := store.SaveMarketData(market); err != nil {
		return fail(err)
	}
	fmt.Printf("updated %d securities\n", len(market.Tickers()))
	return subcommands.ExitSuccess
}
