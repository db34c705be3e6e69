package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProbeDays bounds the forward day-by-day probe used to resolve a requested
// date to the nearest later date with a price. Dates that resolve nowhere
// within the window are silently dropped by batch resolution.
const ProbeDays = 10

// Resolved is the outcome of batch price resolution for one trading date.
// Occurrences counts how many originally requested dates collapsed onto it.
type Resolved struct {
	Price       decimal.Decimal
	Occurrences int
}

// PriceOracle is the engine's only window on market prices. Implementations
// may perform blocking I/O on every call; the engine imposes no timeout or
// cancellation of its own, callers that want bounded latency must wrap the
// oracle they provide.
type PriceOracle interface {
	// PriceOn returns the price of a security on a date, or zero when unknown.
	PriceOn(ticker string, on Date) decimal.Decimal

	// HasPrice reports whether a price is known for the exact date.
	HasPrice(ticker string, on Date) bool

	// HasTicker reports whether the security exists in the price universe at all.
	HasTicker(ticker string) bool

	// PricesOn resolves a batch of requested dates, keyed by the resolved
	// trading date. Each requested date missing from the series is probed
	// forward day-by-day, up to ProbeDays and never past asOf, to the nearest
	// later priced date; requested dates that collapse onto the same resolved
	// date accumulate in Occurrences. Unresolvable dates are dropped, not
	// reported as errors.
	PricesOn(ticker string, dates []Date, asOf Date) map[Date]Resolved
}

// RequirePrice is the strict single-date lookup used by validation paths: a
// ticker outside the universe is ErrUnknownSecurity, a day without a price is
// ErrMissingPriceData. The scheduler never uses it; missing data there is a
// skip, not a failure.
func RequirePrice(o PriceOracle, ticker string, on Date) (decimal.Decimal, error) {
	if !o.HasTicker(ticker) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSecurity, ticker)
	}
	if !o.HasPrice(ticker, on) {
		return decimal.Zero, fmt.Errorf("%w: no price for %s on %s", ErrMissingPriceData, ticker, on)
	}
	return o.PriceOn(ticker, on), nil
}
