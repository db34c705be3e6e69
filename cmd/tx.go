package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/perriv/folio"
)

// txFlags are the flags shared by buy and sell.
type txFlags struct {
	portfolio  string
	security   string
	quantity   string
	price      string
	commission string
	exchange   string
	date       string
}

func (t *txFlags) set(f *flag.FlagSet) {
	f.StringVar(&t.portfolio, "p", "", "Portfolio to record the trade in.")
	f.StringVar(&t.security, "s", "", "Security ticker.")
	f.StringVar(&t.quantity, "q", "", "Quantity traded.")
	f.StringVar(&t.price, "price", "", "Unit price. When omitted, the stored market price for the date is used.")
	f.StringVar(&t.commission, "c", "0", "Broker commission.")
	f.StringVar(&t.exchange, "x", "", "Exchange the trade happened on.")
	f.StringVar(&t.date, "d", "0d", "Trade date (defaults to today).")
}

// parse resolves the flags into a transaction, looking the price up in the
// market data when it was not given.
func (t *txFlags) parse(sell bool) (folio.Transaction, error) {
	if t.portfolio == "" || t.security == "" || t.quantity == "" {
		return folio.Transaction{}, fmt.Errorf("flags -p, -s and -q are required")
	}
	on, err := folio.ParseDate(t.date)
	if err != nil {
		return folio.Transaction{}, err
	}
	qty, err := decimal.NewFromString(t.quantity)
	if err != nil {
		return folio.Transaction{}, fmt.Errorf("invalid quantity %q: %w", t.quantity, err)
	}
	if !qty.IsPositive() {
		return folio.Transaction{}, fmt.Errorf("quantity %s is not positive", qty)
	}
	if sell {
		qty = qty.Neg()
	}
	commission, err := decimal.NewFromString(t.commission)
	if err != nil {
		return folio.Transaction{}, fmt.Errorf("invalid commission %q: %w", t.commission, err)
	}

	var price decimal.Decimal
	if t.price != "" {
		price, err = decimal.NewFromString(t.price)
		if err != nil {
			return folio.Transaction{}, fmt.Errorf("invalid price %q: %w", t.price, err)
		}
	} else {
		_, market, err := loadMarketData()
		if err != nil {
			return folio.Transaction{}, err
		}
		price, err = folio.RequirePrice(market, t.security, on)
		if err != nil {
			return folio.Transaction{}, err
		}
	}

	return folio.NewTransaction(on, t.security, qty, price, commission, t.exchange), nil
}

// record applies the transaction and saves the portfolio. Sales re-run the
// ledger's short-sale validation explicitly before saving.
func (t *txFlags) record(tx folio.Transaction) error {
	store, p, err := loadPortfolio(t.portfolio)
	if err != nil {
		return err
	}
	ledger := p.Apply(tx)
	if tx.IsSale() {
		if err := ledger.Validate(); err != nil {
			return err
		}
	}
	if err := store.SavePortfolio(p); err != nil {
		return err
	}
	fmt.Printf("%s: recorded %s (position %s, avg %s)\n", t.portfolio, tx, ledger.Position(), ledger.AveragePrice())
	return nil
}

type buyCmd struct{ txFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a security" }
func (*buyCmd) Usage() string {
	return `fol buy -p <portfolio> -s <ticker> -q <quantity> [-price <price>] [-c <commission>] [-d <date>]

  Records a buy in the security's ledger, creating the ledger on first trade.

`
}
func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.parse(false)
	if err != nil {
		return fail(err)
	}
	if err := c.record(tx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type sellCmd struct{ txFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of a security" }
func (*sellCmd) Usage() string {
	return `fol sell -p <portfolio> -s <ticker> -q <quantity> [-price <price>] [-c <commission>] [-d <date>]

  Records a sale. A sale driving the chronological position negative is
  rejected and the portfolio is left unchanged.

`
}
func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.parse(true)
	if err != nil {
		return fail(err)
	}
	if err := c.record(tx); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
