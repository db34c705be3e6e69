package folio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// securityDoc is the wire form of a Security: identity plus a date-keyed
// close-price series.
type securityDoc struct {
	Ticker   string                     `json:"ticker"`
	Name     string                     `json:"name,omitempty"`
	Exchange string                     `json:"exchange,omitempty"`
	Currency string                     `json:"currency,omitempty"`
	Prices   map[string]decimal.Decimal `json:"prices"`
}

// EncodeSecurity writes one security and its price series as indented JSON.
func EncodeSecurity(w io.Writer, sec *Security) error {
	doc := securityDoc{
		Ticker:   sec.ticker,
		Name:     sec.name,
		Exchange: sec.exchange,
		Currency: sec.currency,
		Prices:   make(map[string]decimal.Decimal, len(sec.days)),
	}
	for on, price := range sec.Series() {
		doc.Prices[on.String()] = price
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// DecodeSecurity reads one security written by EncodeSecurity.
func DecodeSecurity(r io.Reader) (*Security, error) {
	var doc securityDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Ticker == "" {
		return nil, fmt.Errorf("security document without a ticker")
	}
	sec := NewSecurity(doc.Ticker, doc.Name, doc.Exchange, doc.Currency)
	for day, price := range doc.Prices {
		on, err := ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("security %s: %w", doc.Ticker, err)
		}
		sec.SetPrice(on, price)
	}
	return sec, nil
}
