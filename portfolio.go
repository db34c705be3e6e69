package folio

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Portfolio is a named set of ledgers, one per security, plus the recurring
// strategies attached to it.
//
// A portfolio exclusively owns its ledgers: constructors copy any map they
// are handed, so no external alias retains write access. It is not safe for
// concurrent use; every operation runs to completion on the caller's
// goroutine.
type Portfolio struct {
	name      string
	createdAt Date
	ledgers   map[string]*Ledger
	stratlist []Strategy
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(name string, createdAt Date) *Portfolio {
	return &Portfolio{
		name:      name,
		createdAt: createdAt,
		ledgers:   make(map[string]*Ledger),
	}
}

// BuildPortfolio creates a portfolio from existing ledgers, taking ownership
// by deep-copying them. Every ledger is validated against short sales; a
// single violation rejects the whole construction.
func BuildPortfolio(name string, createdAt Date, ledgers map[string]*Ledger) (*Portfolio, error) {
	p := NewPortfolio(name, createdAt)
	for ticker, ledger := range ledgers {
		if err := ledger.Validate(); err != nil {
			return nil, fmt.Errorf("portfolio %s: %w", name, err)
		}
		clone := NewLedger(ledger.ticker, ledger.name)
		for tx := range ledger.Transactions() {
			clone.Append(tx)
		}
		p.ledgers[ticker] = clone
	}
	return p, nil
}

// Name returns the portfolio name.
func (p *Portfolio) Name() string { return p.name }

// CreatedAt returns the portfolio creation date.
func (p *Portfolio) CreatedAt() Date { return p.createdAt }

// Ledger returns the ledger for a ticker, or nil when the security is not held.
func (p *Portfolio) Ledger(ticker string) *Ledger { return p.ledgers[ticker] }

// Tickers returns the held tickers in lexical order.
func (p *Portfolio) Tickers() []string {
	tickers := slices.Collect(maps.Keys(p.ledgers))
	slices.Sort(tickers)
	return tickers
}

// Ledgers returns an iterator over the ledgers in ticker order.
func (p *Portfolio) Ledgers() iter.Seq[*Ledger] {
	return func(yield func(*Ledger) bool) {
		for _, ticker := range p.Tickers() {
			if !yield(p.ledgers[ticker]) {
				return
			}
		}
	}
}

// Apply appends a transaction to the security's ledger, creating the ledger
// when the security is not held yet. It returns the ledger written to.
//
// Apply does not re-run the short-sale check; callers that need per-call
// enforcement invoke Ledger.Validate explicitly afterwards.
func (p *Portfolio) Apply(tx Transaction) *Ledger {
	ledger, ok := p.ledgers[tx.Security]
	if !ok {
		ledger = NewLedger(tx.Security, "")
		p.ledgers[tx.Security] = ledger
	}
	ledger.Append(tx)
	return ledger
}

// AddStrategy attaches a recurring strategy to the portfolio. Strategy names
// are unique within a portfolio since generated transactions are traced back
// by name.
func (p *Portfolio) AddStrategy(s Strategy) error {
	for _, existing := range p.stratlist {
		if existing.Name == s.Name {
			return fmt.Errorf("portfolio %s already has a strategy named %q", p.name, s.Name)
		}
	}
	p.stratlist = append(p.stratlist, s)
	return nil
}

// Strategies returns the attached strategies in attachment order.
func (p *Portfolio) Strategies() []Strategy {
	return slices.Clone(p.stratlist)
}

// ValueOn values the whole portfolio as of a past date: for every held
// security, the position on that date times the oracle price on that date,
// rounded to 2 decimals. A ticker missing from the oracle's universe is a
// structural error.
func (p *Portfolio) ValueOn(on Date, oracle PriceOracle) (decimal.Decimal, error) {
	if !on.Before(Today()) {
		return decimal.Zero, fmt.Errorf("%w: %s is not in the past", ErrInvalidDate, on)
	}
	var total decimal.Decimal
	for ledger := range p.Ledgers() {
		if !oracle.HasTicker(ledger.ticker) {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSecurity, ledger.ticker)
		}
		value, err := ledger.ValueOn(on, oracle.PriceOn(ledger.ticker, on))
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(value)
	}
	return round2(total), nil
}

// valueAt is the chart pipeline's valuation: like ValueOn but without the
// past-date guard, and data gaps (unknown tickers, unpriced days) degrade to
// zero instead of failing the whole chart.
func (p *Portfolio) valueAt(on Date, oracle PriceOracle) decimal.Decimal {
	var total decimal.Decimal
	for ledger := range p.Ledgers() {
		price := oracle.PriceOn(ledger.ticker, on)
		if price.IsZero() {
			continue
		}
		var qty decimal.Decimal
		for tx := range ledger.Transactions() {
			if !tx.Date.After(on) {
				qty = qty.Add(tx.Quantity)
			}
		}
		total = total.Add(qty.Mul(price))
	}
	return round2(total)
}

// CostBasisOn returns the total cost basis of the portfolio as of a past
// date: every buy's gross amount plus every transaction's commission.
func (p *Portfolio) CostBasisOn(on Date) (decimal.Decimal, error) {
	if !on.Before(Today()) {
		return decimal.Zero, fmt.Errorf("%w: %s is not in the past", ErrInvalidDate, on)
	}
	var total decimal.Decimal
	for ledger := range p.Ledgers() {
		cost, err := ledger.CostBasisOn(on)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(cost)
	}
	return round2(total), nil
}

// CompositionOn reconstructs the portfolio composition as of a date, one row
// per security with at least one transaction at or before the date. A date
// preceding all activity yields an empty report, not an error.
func (p *Portfolio) CompositionOn(on Date) CompositionReport {
	report := CompositionReport{Portfolio: p.name, Date: on, Holdings: []Holding{}}
	for ledger := range p.Ledgers() {
		if h, ok := ledger.CompositionOn(on); ok {
			report.Holdings = append(report.Holdings, h)
		}
	}
	return report
}
