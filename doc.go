// Package folio is a portfolio ledger and valuation engine.
//
// It tracks named portfolios of tradable securities as per-security
// transaction ledgers, values a portfolio as of an arbitrary past date,
// computes cost basis, reconstructs point-in-time composition, and renders a
// coarse performance chart over a date span. Recurring investment strategies
// ("dollar-cost averaging") replay on a schedule and generate transactions
// idempotently.
//
// The engine consumes market prices through the PriceOracle interface and
// persists its entities through Store. Everything is single-threaded and
// synchronous: no operation suspends, and nothing here is safe for
// concurrent use.
package folio
