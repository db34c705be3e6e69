package folio

import (
	"log"
	"maps"
	"slices"
)

// lastRunOf returns the most recent transaction date generated by the named
// strategy, scanning every ledger of the portfolio. ok is false when the
// strategy has never run.
func (p *Portfolio) lastRunOf(name string) (last Date, ok bool) {
	for ledger := range p.Ledgers() {
		for tx := range ledger.Transactions() {
			if tx.Source == name && tx.Date.After(last) {
				last, ok = tx.Date, true
			}
		}
	}
	return last, ok
}

// dueDates computes the scheduled investment dates of a strategy that are not
// covered by a prior run: stepping EveryDays at a time, strictly after the
// last generated transaction, up to yesterday and up to the strategy's end
// date when set. Starting strictly after the last run is what makes a run
// idempotent; dates already generated are never produced again.
func (p *Portfolio) dueDates(s Strategy) []Date {
	next := s.Start
	if last, ok := p.lastRunOf(s.Name); ok {
		next = last.Add(s.EveryDays)
	}

	limit := Today().Add(-1)
	if !s.End.IsZero() && s.End.Before(limit) {
		limit = s.End
	}

	var due []Date
	for on := next; !on.After(limit); on = on.Add(s.EveryDays) {
		due = append(due, on)
	}
	return due
}

// RunStrategy executes one scheduling pass of a recurring strategy: it
// computes the not-yet-applied due dates, resolves a price per (security,
// date) pair through the oracle, and applies the resulting transactions to
// the portfolio, auto-creating ledgers for securities not held yet.
//
// A (security, date) pair without a resolvable price is skipped, never an
// error: the run emits zero or more transactions and always completes. The
// emitted transactions are returned in (ticker, date) order.
func (p *Portfolio) RunStrategy(s Strategy, oracle PriceOracle) []Transaction {
	due := p.dueDates(s)
	if len(due) == 0 {
		return nil
	}
	asOf := Today().Add(-1)

	var emitted []Transaction
	for _, ticker := range s.Tickers() {
		if s.Weight(ticker) == 0 {
			continue
		}
		investable := s.Investable(ticker)
		if investable.IsNegative() {
			continue
		}

		resolved := oracle.PricesOn(ticker, due, asOf)
		for _, on := range slices.SortedFunc(maps.Keys(resolved), Date.compare) {
			r := resolved[on]
			if r.Price.IsZero() {
				continue
			}
			tx := Transaction{
				Date:       on,
				Security:   ticker,
				Quantity:   investable.Div(r.Price),
				Price:      r.Price,
				Commission: s.Commission,
				Source:     s.Name,
			}
			// A resolved date carries one transaction per requested date that
			// collapsed onto it, so no scheduled investment is lost.
			for i := 0; i < r.Occurrences; i++ {
				p.Apply(tx)
				emitted = append(emitted, tx)
			}
		}
	}
	if len(emitted) > 0 {
		log.Printf("strategy %q: generated %d transactions over %d due dates", s.Name, len(emitted), len(due))
	}
	return emitted
}

// compare orders two dates chronologically, for sorting.
func (d Date) compare(x Date) int {
	switch {
	case d.Before(x):
		return -1
	case d.After(x):
		return 1
	default:
		return 0
	}
}
