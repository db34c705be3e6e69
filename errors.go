package folio

import "errors"

// Sentinel errors for the structural failure modes of the engine. They are
// surfaced to the caller untranslated; data-availability gaps (a missing price
// inside a strategy run or a chart bucket) are absorbed locally and never use
// these.
var (
	// ErrInvalidDate reports a valuation or cost-basis query for today or a future date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNegativeQuantity reports a transaction set whose chronological replay
	// drives a position below zero (a short sale).
	ErrNegativeQuantity = errors.New("negative resultant quantity")

	// ErrUnknownSecurity reports a ticker absent from the price universe.
	ErrUnknownSecurity = errors.New("unknown security")

	// ErrMissingPriceData reports an unresolvable price on an explicit
	// single-date validation path.
	ErrMissingPriceData = errors.New("missing price data")
)
