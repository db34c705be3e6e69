package folio

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dcaStrategy(t *testing.T, name string, weights map[string]Percent, start, end string) Strategy {
	t.Helper()
	s, err := NewStrategy(name, decimal.NewFromInt(1000), MustParseDate(start), MustParseDate(end), 30, decimal.NewFromInt(5), weights)
	if err != nil {
		t.Fatalf("NewStrategy() error: %v", err)
	}
	return s
}

func TestNewStrategy_Validation(t *testing.T) {
	start, end := MustParseDate("2024-01-01"), MustParseDate("2024-12-31")
	amount := decimal.NewFromInt(1000)
	weights := map[string]Percent{"ACME": 100}

	testCases := []struct {
		name string
		run  func() (Strategy, error)
	}{
		{"empty name", func() (Strategy, error) {
			return NewStrategy("", amount, start, end, 30, decimal.Zero, weights)
		}},
		{"reserved name", func() (Strategy, error) {
			return NewStrategy(SourceManual, amount, start, end, 30, decimal.Zero, weights)
		}},
		{"zero amount", func() (Strategy, error) {
			return NewStrategy("dca", decimal.Zero, start, end, 30, decimal.Zero, weights)
		}},
		{"missing start", func() (Strategy, error) {
			return NewStrategy("dca", amount, Date{}, end, 30, decimal.Zero, weights)
		}},
		{"end before start", func() (Strategy, error) {
			return NewStrategy("dca", amount, end, start, 30, decimal.Zero, weights)
		}},
		{"zero frequency", func() (Strategy, error) {
			return NewStrategy("dca", amount, start, end, 0, decimal.Zero, weights)
		}},
		{"negative commission", func() (Strategy, error) {
			return NewStrategy("dca", amount, start, end, 30, decimal.NewFromInt(-1), weights)
		}},
		{"no weights", func() (Strategy, error) {
			return NewStrategy("dca", amount, start, end, 30, decimal.Zero, nil)
		}},
		{"negative weight", func() (Strategy, error) {
			return NewStrategy("dca", amount, start, end, 30, decimal.Zero, map[string]Percent{"ACME": -10})
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.run(); err == nil {
				t.Error("NewStrategy() accepted an invalid definition")
			}
		})
	}
}

func TestRunStrategy(t *testing.T) {
	// $1000 every 30 days into ACME at 100%, $5 commission, constant $50
	// price: each run buys (1000 - 5) / 50 = 19.9 units.
	market := NewMarketData()
	market.Add(pricedSecurity(t, "ACME", map[string]float64{
		"2024-01-01": 50,
		"2024-01-31": 50,
		"2024-03-01": 50,
		"2024-03-31": 50,
	}))
	s := dcaStrategy(t, "dca", map[string]Percent{"ACME": 100}, "2024-01-01", "2024-03-31")

	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	emitted := p.RunStrategy(s, market)

	if len(emitted) != 4 {
		t.Fatalf("emitted %d transactions, want 4: %v", len(emitted), emitted)
	}
	for _, tx := range emitted {
		if tx.Quantity.String() != "19.9" {
			t.Errorf("tx on %s: Quantity = %s, want 19.9", tx.Date, tx.Quantity)
		}
		if tx.Source != "dca" {
			t.Errorf("tx on %s: Source = %q, want dca", tx.Date, tx.Source)
		}
		if tx.Commission.String() != "5" {
			t.Errorf("tx on %s: Commission = %s, want 5", tx.Date, tx.Commission)
		}
	}
	if got := emitted[0].Date; got != MustParseDate("2024-01-01") {
		t.Errorf("first tx on %s, want 2024-01-01", got)
	}
	if got := emitted[3].Date; got != MustParseDate("2024-03-31") {
		t.Errorf("last tx on %s, want 2024-03-31", got)
	}

	t.Run("position accumulates in the ledger", func(t *testing.T) {
		ledger := p.Ledger("ACME")
		if ledger == nil {
			t.Fatal("no ACME ledger after the run")
		}
		if got := ledger.Position().String(); got != "79.6" {
			t.Errorf("Position() = %s, want 79.6", got)
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		if again := p.RunStrategy(s, market); len(again) != 0 {
			t.Errorf("replay emitted %d transactions, want 0: %v", len(again), again)
		}
	})

	t.Run("resumes strictly after the last generated date", func(t *testing.T) {
		// Widening the end date re-runs only the not-yet-covered tail.
		wider := dcaStrategy(t, "dca", map[string]Percent{"ACME": 100}, "2024-01-01", "2024-04-30")
		market.Get("ACME").SetPrice(MustParseDate("2024-04-30"), decimal.NewFromInt(50))

		tail := p.RunStrategy(wider, market)
		if len(tail) != 1 {
			t.Fatalf("emitted %d transactions, want 1: %v", len(tail), tail)
		}
		if tail[0].Date != MustParseDate("2024-04-30") {
			t.Errorf("tail tx on %s, want 2024-04-30", tail[0].Date)
		}
	})
}

func TestRunStrategy_ProbeAndOccurrences(t *testing.T) {
	// Every due date lacks an exact price and probes forward onto the same
	// priced day; each collapsed date still buys once.
	market := NewMarketData()
	market.Add(pricedSecurity(t, "ACME", map[string]float64{"2024-01-05": 50}))

	s, err := NewStrategy("dca", decimal.NewFromInt(1000), MustParseDate("2024-01-01"), MustParseDate("2024-01-05"), 2, decimal.NewFromInt(5), map[string]Percent{"ACME": 100})
	if err != nil {
		t.Fatalf("NewStrategy() error: %v", err)
	}

	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	emitted := p.RunStrategy(s, market)

	// Due dates 01-01, 01-03 and 01-05 all resolve onto 01-05.
	if len(emitted) != 3 {
		t.Fatalf("emitted %d transactions, want 3: %v", len(emitted), emitted)
	}
	for _, tx := range emitted {
		if tx.Date != MustParseDate("2024-01-05") {
			t.Errorf("tx on %s, want 2024-01-05", tx.Date)
		}
	}
	if got := p.Ledger("ACME").Position().String(); got != "59.7" {
		t.Errorf("Position() = %s, want 59.7", got)
	}
}

func TestRunStrategy_Skips(t *testing.T) {
	t.Run("unresolvable dates are skipped, not an error", func(t *testing.T) {
		market := NewMarketData()
		market.Add(pricedSecurity(t, "ACME", map[string]float64{"2024-01-01": 50}))
		s := dcaStrategy(t, "dca", map[string]Percent{"ACME": 100}, "2024-01-01", "2024-03-31")

		p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
		emitted := p.RunStrategy(s, market)
		if len(emitted) != 1 {
			t.Fatalf("emitted %d transactions, want 1: %v", len(emitted), emitted)
		}
	})

	t.Run("zero weight and commission-swallowed shares", func(t *testing.T) {
		market := NewMarketData()
		market.Add(pricedSecurity(t, "ACME", map[string]float64{"2024-01-01": 50}))
		market.Add(pricedSecurity(t, "TINY", map[string]float64{"2024-01-01": 50}))
		market.Add(pricedSecurity(t, "ZERO", map[string]float64{"2024-01-01": 50}))

		// TINY's share is $4, below the $5 commission.
		weights := map[string]Percent{"ACME": 99.6, "TINY": 0.4, "ZERO": 0}
		s := dcaStrategy(t, "dca", weights, "2024-01-01", "2024-01-31")

		p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
		emitted := p.RunStrategy(s, market)
		for _, tx := range emitted {
			if tx.Security != "ACME" {
				t.Errorf("unexpected trade in %s", tx.Security)
			}
		}
	})

	t.Run("unknown ticker is skipped", func(t *testing.T) {
		s := dcaStrategy(t, "dca", map[string]Percent{"GHOST": 100}, "2024-01-01", "2024-01-31")
		p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
		if emitted := p.RunStrategy(s, NewMarketData()); len(emitted) != 0 {
			t.Errorf("emitted %d transactions, want 0", len(emitted))
		}
	})
}
