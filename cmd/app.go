// Package cmd implements the CLI application to manage portfolios.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/perriv/folio"
)

// Commands lists every subcommand for registration by the main package.
var Commands = []subcommands.Command{
	&createCmd{},
	&deleteCmd{},
	&listCmd{},
	&buyCmd{},
	&sellCmd{},
	&valueCmd{},
	&costCmd{},
	&holdingCmd{},
	&chartCmd{},
	&strategyAddCmd{},
	&strategyRunCmd{},
	&declareCmd{},
	&updateCmd{},
	&fmtCmd{},
}

// As a CLI application the process is short lived, so shared state lives in
// package-level flags.
var storePath = flag.String("store", ".folio", "Path to the folder holding portfolios and market data")

// openStore opens the app store.
func openStore() (*folio.Store, error) {
	return folio.NewStore(*storePath)
}

// loadPortfolio is the common entry of every portfolio-reading command.
func loadPortfolio(name string) (*folio.Store, *folio.Portfolio, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("missing -p portfolio name")
	}
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.LoadPortfolio(name)
	if err != nil {
		return nil, nil, err
	}
	return store, p, nil
}

// loadMarketData loads the price universe from the store.
func loadMarketData() (*folio.Store, *folio.MarketData, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	m, err := store.LoadMarketData()
	if err != nil {
		return nil, nil, err
	}
	return store, m, nil
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}
