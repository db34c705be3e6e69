package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/perriv/folio"
)

type strategyAddCmd struct {
	portfolio  string
	name       string
	amount     string
	start      string
	end        string
	every      int
	commission string
	weights    string
}

func (*strategyAddCmd) Name() string     { return "strategy-add" }
func (*strategyAddCmd) Synopsis() string { return "attach a recurring investment strategy" }
func (*strategyAddCmd) Usage() string {
	return `fol strategy-add -p <portfolio> -name <name> -amount <amount> -start <date> -every <days> -weights <t:pct,...>

  Attaches a dollar-cost-averaging strategy to the portfolio. Weights split
  the amount across securities, e.g. -weights "AAPL.US:60,MSFT.US:40".

`
}

func (c *strategyAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to attach the strategy to.")
	f.StringVar(&c.name, "name", "", "Strategy name; generated transactions are tagged with it.")
	f.StringVar(&c.amount, "amount", "", "Amount to invest per occurrence.")
	f.StringVar(&c.start, "start", "", "First scheduled investment date.")
	f.StringVar(&c.end, "end", "", "Optional last scheduled date.")
	f.IntVar(&c.every, "every", 30, "Days between scheduled investments.")
	f.StringVar(&c.commission, "c", "0", "Broker commission per generated trade.")
	f.StringVar(&c.weights, "weights", "", "Comma-separated ticker:percent pairs.")
}

// parseWeights parses "AAPL.US:60,MSFT.US:40" into a weight map.
func parseWeights(s string) (map[string]folio.Percent, error) {
	weights := make(map[string]folio.Percent)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		ticker, pct, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q, want ticker:percent", pair)
		}
		value, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return nil, fmt.Errorf("invalid percent in %q: %w", pair, err)
		}
		weights[strings.TrimSpace(ticker)] = folio.Percent(value.InexactFloat64())
	}
	return weights, nil
}

func (c *strategyAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, p, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}

	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		return fail(fmt.Errorf("invalid amount %q: %w", c.amount, err))
	}
	commission, err := decimal.NewFromString(c.commission)
	if err != nil {
		return fail(fmt.Errorf("invalid commission %q: %w", c.commission, err))
	}
	start, err := folio.ParseDate(c.start)
	if err != nil {
		return fail(err)
	}
	var end folio.Date
	if c.end != "" {
		if end, err = folio.ParseDate(c.end); err != nil {
			return fail(err)
		}
	}
	weights, err := parseWeights(c.weights)
	if err != nil {
		return fail(err)
	}

	strategy, err := folio.NewStrategy(c.name, amount, start, end, c.every, commission, weights)
	if err != nil {
		return fail(err)
	}
	if err := p.AddStrategy(strategy); err != nil {
		return fail(err)
	}
	if err := store.SavePortfolio(p); err != nil {
		return fail(err)
	}
	fmt.Printf("attached strategy %s\n", strategy)
	return subcommands.ExitSuccess
}

type strategyRunCmd struct {
	portfolio string
	name      string
}

func (*strategyRunCmd) Name() string     { return "strategy-run" }
func (*strategyRunCmd) Synopsis() string { return "run the portfolio's recurring strategies" }
func (*strategyRunCmd) Usage() string {
	return `fol strategy-run -p <portfolio> [-name <name>]

  Generates and applies all not-yet-applied scheduled investments, up to
  yesterday. Running twice without elapsed time generates nothing the second
  time. Dates without a resolvable price are skipped, never an error.

`
}

func (c *strategyRunCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio whose strategies to run.")
	f.StringVar(&c.name, "name", "", "Run only this strategy (all attached ones by default).")
}

func (c *strategyRunCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, p, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}
	_, market, err := loadMarketData()
	if err != nil {
		return fail(err)
	}

	total := 0
	for _, s := range p.Strategies() {
		if c.name != "" && s.Name != c.name {
			continue
		}
		emitted := p.RunStrategy(s, market)
		for _, tx := range emitted {
			fmt.Printf("  %s\n", tx)
		}
		total += len(emitted)
	}
	if err := store.SavePortfolio(p); err != nil {
		return fail(err)
	}
	fmt.Printf("%d transactions generated\n", total)
	return subcommands.ExitSuccess
}
