package folio

import (
	"fmt"
	"iter"
	"sort"

	"github.com/shopspring/decimal"
)

// round2 rounds a decimal to 2 places, the precision of every derived figure
// in a ledger (running quantity, average price, valuations).
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Ledger is the transaction history of one security within one portfolio,
// together with its derived running totals.
//
// Transactions are kept in append order, which is not necessarily
// chronological; callers that need time order use SortedByDate.
type Ledger struct {
	ticker       string
	name         string
	transactions []Transaction

	position    decimal.Decimal // running signed quantity, rounded to 2 decimals
	avgPrice    decimal.Decimal // quantity-weighted average price, rounded to 2 decimals
	lastTradeOn Date
}

// NewLedger creates an empty ledger for a security. The display name is
// optional and only used in reports.
func NewLedger(ticker, name string) *Ledger {
	return &Ledger{ticker: ticker, name: name}
}

// Ticker returns the security ticker this ledger tracks.
func (l *Ledger) Ticker() string { return l.ticker }

// Name returns the security display name, possibly empty.
func (l *Ledger) Name() string { return l.name }

// Position returns the running signed quantity.
func (l *Ledger) Position() decimal.Decimal { return l.position }

// AveragePrice returns the quantity-weighted average price of the position.
func (l *Ledger) AveragePrice() decimal.Decimal { return l.avgPrice }

// LastTradeOn returns the date of the most recent transaction by date (not by
// append order). It is the zero Date for an empty ledger.
func (l *Ledger) LastTradeOn() Date { return l.lastTradeOn }

// Len returns the number of transactions recorded.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over the transactions in append order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Append records a transaction and updates the running totals.
//
// The average price becomes (oldAvg×oldQty + price×qty) / (oldQty+qty),
// rounded to 2 decimals. When the resulting quantity is exactly zero the
// average is reset to zero: a flat position has no cost per unit.
//
// Append does not guard against short sales; that is a batch precondition
// checked by Validate at construction and decode time.
func (l *Ledger) Append(tx Transaction) {
	total := l.position.Add(tx.Quantity)
	if total.IsZero() {
		l.avgPrice = decimal.Zero
	} else {
		l.avgPrice = round2(l.avgPrice.Mul(l.position).Add(tx.Price.Mul(tx.Quantity)).Div(total))
	}
	l.position = round2(total)
	if tx.Date.After(l.lastTradeOn) {
		l.lastTradeOn = tx.Date
	}
	l.transactions = append(l.transactions, tx)
}

// SortedByDate returns a copy of the transactions sorted by date ascending.
// Same-day transactions keep their append order. The ledger's own storage
// order is left untouched.
func (l *Ledger) SortedByDate() []Transaction {
	txs := make([]Transaction, len(l.transactions))
	copy(txs, l.transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
	return txs
}

// Validate replays the transactions in chronological order and rejects the
// ledger when any prefix drives the cumulative quantity negative.
//
// This is a batch precondition, run once per ledger at construction or import
// time, not an online guard on Append.
func (l *Ledger) Validate() error {
	var running decimal.Decimal
	for _, tx := range l.SortedByDate() {
		running = running.Add(tx.Quantity)
		if running.IsNegative() {
			return fmt.Errorf("%w: %s position is %s after %s", ErrNegativeQuantity, l.ticker, running, tx.Date)
		}
	}
	return nil
}

// ValueOn returns the value of the position held on the given date at the
// given unit price, rounded to 2 decimals. Only past dates can be valued.
func (l *Ledger) ValueOn(on Date, price decimal.Decimal) (decimal.Decimal, error) {
	if !on.Before(Today()) {
		return decimal.Zero, fmt.Errorf("%w: %s is not in the past", ErrInvalidDate, on)
	}
	var qty decimal.Decimal
	for _, tx := range l.transactions {
		if !tx.Date.After(on) {
			qty = qty.Add(tx.Quantity)
		}
	}
	return round2(qty.Mul(price)), nil
}

// CostBasisOn returns the cost of the position on the given date: the gross
// amount of every buy at or before the date, plus the commission of every
// transaction, buy or sell.
func (l *Ledger) CostBasisOn(on Date) (decimal.Decimal, error) {
	if !on.Before(Today()) {
		return decimal.Zero, fmt.Errorf("%w: %s is not in the past", ErrInvalidDate, on)
	}
	var cost decimal.Decimal
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			continue
		}
		if tx.Quantity.IsPositive() {
			cost = cost.Add(tx.Gross())
		}
		cost = cost.Add(tx.Commission)
	}
	return round2(cost), nil
}

// CompositionOn reconstructs the position as of the given date, walking the
// transactions in append order and accumulating quantity and weighted price
// over the ones at or before the date.
//
// The walk deliberately uses append order, not chronological order: when
// transactions were supplied out of order the weighted price can disagree
// with a time-sorted replay. The running totals accumulate in call order the
// same way, so the two stay consistent with each other.
//
// It returns ok=false when no transaction qualifies.
func (l *Ledger) CompositionOn(on Date) (h Holding, ok bool) {
	var qty, avg decimal.Decimal
	var last Date
	for _, tx := range l.transactions {
		if tx.Date.After(on) {
			continue
		}
		total := qty.Add(tx.Quantity)
		if total.IsZero() {
			avg = decimal.Zero
		} else {
			avg = round2(avg.Mul(qty).Add(tx.Price.Mul(tx.Quantity)).Div(total))
		}
		qty = round2(total)
		if tx.Date.After(last) {
			last = tx.Date
		}
		ok = true
	}
	if !ok {
		return Holding{}, false
	}
	return Holding{
		Ticker:       l.ticker,
		Name:         l.name,
		Quantity:     qty.InexactFloat64(),
		AveragePrice: avg.InexactFloat64(),
		LastTradeOn:  last,
	}, true
}
