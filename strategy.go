package folio

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Strategy defines a recurring investment: every EveryDays calendar days from
// Start, invest Amount split across Weights, paying Commission per trade.
//
// A Strategy is validated once at construction and never mutates; each
// scheduling pass reads it and derives the not-yet-applied due dates from the
// portfolio's own transactions.
type Strategy struct {
	Name       string
	Amount     decimal.Decimal
	Start      Date
	End        Date // zero means open-ended
	EveryDays  int
	Commission decimal.Decimal
	weights    map[string]Percent
}

// NewStrategy builds and validates a strategy definition.
func NewStrategy(name string, amount decimal.Decimal, start, end Date, everyDays int, commission decimal.Decimal, weights map[string]Percent) (Strategy, error) {
	if name == "" {
		return Strategy{}, fmt.Errorf("strategy name is missing")
	}
	if name == SourceManual {
		return Strategy{}, fmt.Errorf("strategy name %q is reserved", SourceManual)
	}
	if !amount.IsPositive() {
		return Strategy{}, fmt.Errorf("strategy %s: amount %s is not positive", name, amount)
	}
	if start.IsZero() {
		return Strategy{}, fmt.Errorf("strategy %s: start date is missing", name)
	}
	if !end.IsZero() && end.Before(start) {
		return Strategy{}, fmt.Errorf("strategy %s: end %s precedes start %s", name, end, start)
	}
	if everyDays < 1 {
		return Strategy{}, fmt.Errorf("strategy %s: frequency of %d days is not positive", name, everyDays)
	}
	if commission.IsNegative() {
		return Strategy{}, fmt.Errorf("strategy %s: commission %s is negative", name, commission)
	}
	if len(weights) == 0 {
		return Strategy{}, fmt.Errorf("strategy %s: no security weights", name)
	}
	owned := make(map[string]Percent, len(weights))
	for ticker, w := range weights {
		if w < 0 {
			return Strategy{}, fmt.Errorf("strategy %s: weight %s for %s is negative", name, w, ticker)
		}
		owned[ticker] = w
	}
	return Strategy{
		Name:       name,
		Amount:     amount,
		Start:      start,
		End:        end,
		EveryDays:  everyDays,
		Commission: commission,
		weights:    owned,
	}, nil
}

// Weight returns the percentage of Amount allocated to a ticker.
func (s Strategy) Weight(ticker string) Percent { return s.weights[ticker] }

// Tickers returns the weighted tickers in lexical order.
func (s Strategy) Tickers() []string {
	tickers := slices.Collect(maps.Keys(s.weights))
	slices.Sort(tickers)
	return tickers
}

// Investable returns the amount available for one trade of a ticker: the
// weighted share of Amount minus the commission. It can be negative when the
// commission exceeds the share; the scheduler skips such trades.
func (s Strategy) Investable(ticker string) decimal.Decimal {
	w := decimal.NewFromFloat(float64(s.weights[ticker]))
	return s.Amount.Mul(w).Div(decimal.NewFromInt(100)).Sub(s.Commission)
}

func (s Strategy) String() string {
	every := fmt.Sprintf("every %d days", s.EveryDays)
	if s.EveryDays == 1 {
		every = "every day"
	}
	return fmt.Sprintf("%s: %s %s from %s", s.Name, s.Amount, every, s.Start)
}
