package folio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildPortfolio(t *testing.T) {
	t.Run("copies the ledgers it is handed", func(t *testing.T) {
		source := NewLedger("ACME", "Acme Corp")
		source.Append(tradeOn(t, "2024-01-01", 10, 100))

		p, err := BuildPortfolio("retirement", MustParseDate("2024-01-01"), map[string]*Ledger{"ACME": source})
		if err != nil {
			t.Fatalf("BuildPortfolio() error: %v", err)
		}

		// Mutating the source must not reach the portfolio's copy.
		source.Append(tradeOn(t, "2024-02-01", 10, 200))
		if got := p.Ledger("ACME").Len(); got != 1 {
			t.Errorf("portfolio ledger has %d transactions, want 1", got)
		}
		if got := p.Ledger("ACME").Position().String(); got != "10" {
			t.Errorf("Position() = %s, want 10", got)
		}
	})

	t.Run("rejects a ledger with a short sale", func(t *testing.T) {
		bad := NewLedger("ACME", "")
		bad.Append(tradeOn(t, "2024-01-01", 5, 100))
		bad.Append(tradeOn(t, "2024-02-01", -6, 100))

		_, err := BuildPortfolio("retirement", MustParseDate("2024-01-01"), map[string]*Ledger{"ACME": bad})
		if !errors.Is(err, ErrNegativeQuantity) {
			t.Fatalf("BuildPortfolio() = %v, want ErrNegativeQuantity", err)
		}
	})
}

func TestPortfolio_Apply(t *testing.T) {
	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	if p.Ledger("ACME") != nil {
		t.Fatal("empty portfolio should have no ACME ledger")
	}
	ledger := p.Apply(tradeOn(t, "2024-01-01", 10, 100))
	if ledger == nil || p.Ledger("ACME") != ledger {
		t.Fatal("Apply() should create and return the ACME ledger")
	}
	if got := ledger.Position().String(); got != "10" {
		t.Errorf("Position() = %s, want 10", got)
	}
}

func TestPortfolio_AddStrategy(t *testing.T) {
	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	s := dcaStrategy(t, "dca", map[string]Percent{"ACME": 100}, "2024-01-01", "2024-12-31")
	if err := p.AddStrategy(s); err != nil {
		t.Fatalf("AddStrategy() error: %v", err)
	}
	if err := p.AddStrategy(s); err == nil {
		t.Error("AddStrategy() accepted a duplicate name")
	}
	if got := len(p.Strategies()); got != 1 {
		t.Errorf("len(Strategies()) = %d, want 1", got)
	}
}

func portfolioWithTwoHoldings(t *testing.T) *Portfolio {
	t.Helper()
	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	p.Apply(NewTransaction(MustParseDate("2024-01-01"), "ACME", decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(5), ""))
	p.Apply(NewTransaction(MustParseDate("2024-02-01"), "GLOB", decimal.NewFromInt(4), decimal.NewFromInt(250), decimal.NewFromInt(5), ""))
	return p
}

func TestPortfolio_ValueOn(t *testing.T) {
	p := portfolioWithTwoHoldings(t)
	market := NewMarketData()
	market.Add(pricedSecurity(t, "ACME", map[string]float64{"2024-06-03": 120}))
	market.Add(pricedSecurity(t, "GLOB", map[string]float64{"2024-06-03": 300}))

	t.Run("sums every position at the oracle price", func(t *testing.T) {
		value, err := p.ValueOn(MustParseDate("2024-06-03"), market)
		if err != nil {
			t.Fatalf("ValueOn() error: %v", err)
		}
		// 10×120 + 4×300
		if got := value.String(); got != "2400" {
			t.Errorf("ValueOn() = %s, want 2400", got)
		}
	})

	t.Run("rejects a non-past date", func(t *testing.T) {
		if _, err := p.ValueOn(Today(), market); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ValueOn(today) = %v, want ErrInvalidDate", err)
		}
	})

	t.Run("held security outside the oracle universe", func(t *testing.T) {
		small := NewMarketData()
		small.Add(pricedSecurity(t, "ACME", map[string]float64{"2024-06-03": 120}))
		if _, err := p.ValueOn(MustParseDate("2024-06-03"), small); !errors.Is(err, ErrUnknownSecurity) {
			t.Errorf("ValueOn() = %v, want ErrUnknownSecurity", err)
		}
	})
}

func TestPortfolio_CostBasisOn(t *testing.T) {
	p := portfolioWithTwoHoldings(t)

	cost, err := p.CostBasisOn(MustParseDate("2024-06-03"))
	if err != nil {
		t.Fatalf("CostBasisOn() error: %v", err)
	}
	// (10×100 + 5) + (4×250 + 5)
	if got := cost.String(); got != "2010" {
		t.Errorf("CostBasisOn() = %s, want 2010", got)
	}

	if _, err := p.CostBasisOn(Today().Add(5)); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("CostBasisOn(future) = %v, want ErrInvalidDate", err)
	}
}

func TestPortfolio_CompositionOn(t *testing.T) {
	p := portfolioWithTwoHoldings(t)

	t.Run("one row per active security", func(t *testing.T) {
		report := p.CompositionOn(MustParseDate("2024-06-03"))
		if report.Portfolio != "retirement" {
			t.Errorf("Portfolio = %q, want retirement", report.Portfolio)
		}
		if len(report.Holdings) != 2 {
			t.Fatalf("len(Holdings) = %d, want 2", len(report.Holdings))
		}
		// Ledgers iterate in ticker order.
		if report.Holdings[0].Ticker != "ACME" || report.Holdings[1].Ticker != "GLOB" {
			t.Errorf("tickers = %s, %s, want ACME, GLOB", report.Holdings[0].Ticker, report.Holdings[1].Ticker)
		}
	})

	t.Run("date before any activity yields an empty report", func(t *testing.T) {
		report := p.CompositionOn(MustParseDate("2020-01-01"))
		if report.Holdings == nil || len(report.Holdings) != 0 {
			t.Errorf("Holdings = %v, want empty non-nil slice", report.Holdings)
		}
	})

	t.Run("cut-off hides later securities", func(t *testing.T) {
		report := p.CompositionOn(MustParseDate("2024-01-15"))
		if len(report.Holdings) != 1 || report.Holdings[0].Ticker != "ACME" {
			t.Errorf("Holdings = %v, want ACME only", report.Holdings)
		}
	})
}
