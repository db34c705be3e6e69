package folio

import (
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Security holds the identity and the daily price series of one tradable
// security. The series is kept sorted by date with unique days.
type Security struct {
	ticker   string
	name     string
	exchange string
	currency string

	days   []Date
	prices []decimal.Decimal
}

// NewSecurity creates a security with an empty price series.
func NewSecurity(ticker, name, exchange, currency string) *Security {
	return &Security{ticker: ticker, name: name, exchange: exchange, currency: currency}
}

func (s *Security) Ticker() string   { return s.ticker }
func (s *Security) Name() string     { return s.name }
func (s *Security) Exchange() string { return s.exchange }
func (s *Security) Currency() string { return s.currency }

// SetPrice records the closing price for a day, replacing any existing value.
func (s *Security) SetPrice(on Date, price decimal.Decimal) {
	if i := slices.Index(s.days, on); i >= 0 {
		// Last write wins for a given day.
		s.prices[i] = price
		return
	}
	s.days, s.prices = append(s.days, on), append(s.prices, price)
	sort.Sort(bySeriesDay{s})
}

// Price returns the closing price for the exact day.
func (s *Security) Price(on Date) (decimal.Decimal, bool) {
	if i := slices.Index(s.days, on); i >= 0 {
		return s.prices[i], true
	}
	return decimal.Zero, false
}

// Series returns an iterator over the (day, price) points in chronological order.
func (s *Security) Series() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range s.days {
			if !yield(on, s.prices[i]) {
				return
			}
		}
	}
}

// First returns the earliest priced day, or the zero Date for an empty series.
func (s *Security) First() Date {
	if len(s.days) == 0 {
		return Date{}
	}
	return s.days[0]
}

// Latest returns the most recent priced day, or the zero Date for an empty series.
func (s *Security) Latest() Date {
	if len(s.days) == 0 {
		return Date{}
	}
	return s.days[len(s.days)-1]
}

// bySeriesDay sorts the parallel day/price slices chronologically.
type bySeriesDay struct{ *Security }

func (b bySeriesDay) Len() int           { return len(b.days) }
func (b bySeriesDay) Less(i, j int) bool { return b.days[i].Before(b.days[j]) }
func (b bySeriesDay) Swap(i, j int) {
	b.days[i], b.days[j] = b.days[j], b.days[i]
	b.prices[i], b.prices[j] = b.prices[j], b.prices[i]
}

// MarketData is an in-memory price universe: one price series per ticker.
// It implements PriceOracle.
type MarketData struct {
	index map[string]*Security
}

// NewMarketData returns an empty market data collection.
func NewMarketData() *MarketData {
	return &MarketData{index: make(map[string]*Security)}
}

// Add registers a security, returning the existing one if the ticker is already known.
func (m *MarketData) Add(sec *Security) *Security {
	if existing, ok := m.index[sec.ticker]; ok {
		return existing
	}
	m.index[sec.ticker] = sec
	return sec
}

// Get returns the security for a ticker, or nil if unknown.
func (m *MarketData) Get(ticker string) *Security { return m.index[ticker] }

// Tickers returns the known tickers in lexical order.
func (m *MarketData) Tickers() []string {
	tickers := slices.Collect(maps.Keys(m.index))
	slices.Sort(tickers)
	return tickers
}

// HasTicker implements PriceOracle.
func (m *MarketData) HasTicker(ticker string) bool {
	_, ok := m.index[ticker]
	return ok
}

// PriceOn implements PriceOracle: the price on the exact date, or zero.
func (m *MarketData) PriceOn(ticker string, on Date) decimal.Decimal {
	sec, ok := m.index[ticker]
	if !ok {
		return decimal.Zero
	}
	price, _ := sec.Price(on)
	return price
}

// HasPrice implements PriceOracle.
func (m *MarketData) HasPrice(ticker string, on Date) bool {
	sec, ok := m.index[ticker]
	if !ok {
		return false
	}
	_, ok = sec.Price(on)
	return ok
}

// PricesOn implements PriceOracle batch resolution. Each requested date is
// probed forward up to ProbeDays (never past asOf) to the nearest priced day;
// requested dates collapsing onto the same priced day accumulate occurrences,
// and dates resolving nowhere are dropped.
func (m *MarketData) PricesOn(ticker string, dates []Date, asOf Date) map[Date]Resolved {
	sec, ok := m.index[ticker]
	if !ok {
		return nil
	}
	resolved := make(map[Date]Resolved)
	for _, requested := range dates {
		for i := 0; i <= ProbeDays; i++ {
			candidate := requested.Add(i)
			if candidate.After(asOf) {
				break
			}
			price, ok := sec.Price(candidate)
			if !ok {
				continue
			}
			r := resolved[candidate]
			r.Price = price
			r.Occurrences++
			resolved[candidate] = r
			break
		}
	}
	return resolved
}

var _ PriceOracle = (*MarketData)(nil)
