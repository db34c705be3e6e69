package folio

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/PaesslerAG/jsonpath"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key used to fetch prices from EODHD.com.\n If missing it is read from the environment variable "+eodhdAPIKeyEnv+". You can get one at https://eodhd.com/")

func eodhdAPIKey() string {
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *eodhdAPIFlag
}

// EODHDClient fetches end-of-day and real-time prices from EODHD.com to feed
// a MarketData universe. Responses are cached on disk for the day; real-time
// quotes are additionally memoized in process for a few minutes.
type EODHDClient struct {
	client *http.Client
	apiKey string
	memo   *gocache.Cache
}

// NewEODHDClient creates a client. An empty key falls back to the flag and
// then the environment variable.
func NewEODHDClient(apiKey string) *EODHDClient {
	if apiKey == "" {
		apiKey = eodhdAPIKey()
	}
	return &EODHDClient{
		client: dailyClient(),
		apiKey: apiKey,
		memo:   gocache.New(15*time.Minute, 30*time.Minute),
	}
}

// eodBar is one day of the EODHD end-of-day series.
type eodBar struct {
	Date  Date            `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// FetchDaily pulls the daily close series of a security for [from, to] and
// merges it into the security's price history.
func (c *EODHDClient) FetchDaily(sec *Security, from, to Date) error {
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?from=%s&to=%s&period=d&fmt=json&api_token=%s",
		url.PathEscape(sec.Ticker()), from, to, url.QueryEscape(c.apiKey))
	var bars []eodBar
	if err := jwget(c.client, addr, &bars); err != nil {
		return fmt.Errorf("cannot fetch %s: %w", sec.Ticker(), err)
	}
	for _, bar := range bars {
		if !bar.Close.IsZero() {
			sec.SetPrice(bar.Date, bar.Close)
		}
	}
	return nil
}

// Latest returns the most recent traded price of a security from the
// real-time endpoint.
func (c *EODHDClient) Latest(ticker string) (decimal.Decimal, error) {
	if memoized, ok := c.memo.Get(ticker); ok {
		return memoized.(decimal.Decimal), nil
	}

	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s",
		url.PathEscape(ticker), url.QueryEscape(c.apiKey))
	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch real-time %s: %w", ticker, err)
	}

	jval, err := jsonpath.Get("$.close", jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse real-time %s: %w", ticker, err)
	}
	// jsonpath may answer with a single value or a one-element list.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("real-time %s: close is not a number: %v", ticker, jval)
	}

	price := decimal.NewFromFloat(val)
	c.memo.Set(ticker, price, gocache.DefaultExpiration)
	return price, nil
}

// Update refreshes the price series of every security in the universe up to
// yesterday, resuming each series after its latest known day. Per-security
// failures are joined and reported together; successfully fetched series are
// kept.
func (c *EODHDClient) Update(m *MarketData, defaultFrom Date) error {
	to := Today().Add(-1)
	var errs error
	for _, ticker := range m.Tickers() {
		sec := m.Get(ticker)
		from := defaultFrom
		if latest := sec.Latest(); !latest.IsZero() && latest.Add(1).After(from) {
			from = latest.Add(1)
		}
		if from.After(to) {
			continue
		}
		if err := c.FetchDaily(sec, from, to); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
