package folio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildChart(t *testing.T) {
	t.Run("linear scale over the non-zero values", func(t *testing.T) {
		points := []ChartPoint{
			{"a", 100},
			{"b", 0}, // gap
			{"c", 200},
			{"d", 150},
		}
		plot := BuildChart(points, 12) // step = (200-100)/10 = 10

		wantIntensities := []int{1, 0, 11, 6}
		for i, want := range wantIntensities {
			if got := plot.Bars[i].Intensity; got != want {
				t.Errorf("Bars[%d].Intensity = %d, want %d", i, got, want)
			}
		}
		if plot.Baseline != 100 {
			t.Errorf("Baseline = %d, want 100", plot.Baseline)
		}
		if plot.Scale != 10 {
			t.Errorf("Scale = %v, want 10", plot.Scale)
		}
	})

	t.Run("degenerate step falls back to one unit per value unit", func(t *testing.T) {
		points := []ChartPoint{{"a", 100}, {"b", 105.5}}
		plot := BuildChart(points, MaxChartTicks)

		if got := plot.Bars[0].Intensity; got != 1 {
			t.Errorf("Bars[0].Intensity = %d, want 1", got)
		}
		if got := plot.Bars[1].Intensity; got != 6 {
			t.Errorf("Bars[1].Intensity = %d, want 6", got)
		}
		if plot.Baseline != 100 || plot.Scale != 0 {
			t.Errorf("Baseline/Scale = %d/%v, want 100/0", plot.Baseline, plot.Scale)
		}
	})

	t.Run("flat series", func(t *testing.T) {
		plot := BuildChart([]ChartPoint{{"a", 500}, {"b", 500}}, MaxChartTicks)
		for i, bar := range plot.Bars {
			if bar.Intensity != 1 {
				t.Errorf("Bars[%d].Intensity = %d, want 1", i, bar.Intensity)
			}
		}
	})

	t.Run("no data at all", func(t *testing.T) {
		plot := BuildChart([]ChartPoint{{"a", 0}, {"b", 0}}, MaxChartTicks)
		if len(plot.Bars) != 2 {
			t.Fatalf("len(Bars) = %d, want 2", len(plot.Bars))
		}
		for i, bar := range plot.Bars {
			if bar.Intensity != 0 {
				t.Errorf("Bars[%d].Intensity = %d, want 0", i, bar.Intensity)
			}
		}
		if plot.Baseline != 0 || plot.Scale != 0 {
			t.Errorf("Baseline/Scale = %d/%v, want 0/0", plot.Baseline, plot.Scale)
		}
	})
}

func TestPortfolio_PerformanceChart(t *testing.T) {
	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	p.Apply(NewTransaction(MustParseDate("2024-06-01"), "ACME", decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero, ""))

	// A single priced day; every later bucket finds it through the lookback.
	market := NewMarketData()
	market.Add(pricedSecurity(t, "ACME", map[string]float64{"2024-07-03": 100}))

	plot, err := p.PerformanceChart(MustParseDate("2024-07-01"), MustParseDate("2024-07-10"), market)
	if err != nil {
		t.Fatalf("PerformanceChart() error: %v", err)
	}
	if plot.Resolution != Daily {
		t.Fatalf("Resolution = %s, want daily", plot.Resolution)
	}
	if len(plot.Bars) != 10 {
		t.Fatalf("len(Bars) = %d, want 10", len(plot.Bars))
	}

	// July 1st and 2nd predate all price data even through the lookback; from
	// the 3rd on every bucket carries the same valuation, so intensities
	// degrade to the flat-series 1.
	wantIntensities := []int{0, 0, 1, 1, 1, 1, 1, 1, 1, 1}
	for i, want := range wantIntensities {
		if got := plot.Bars[i].Intensity; got != want {
			t.Errorf("Bars[%d] (%s): Intensity = %d, want %d", i, plot.Bars[i].Label, got, want)
		}
	}
	if plot.Baseline != 1000 {
		t.Errorf("Baseline = %d, want 1000", plot.Baseline)
	}
}

func TestPortfolio_PerformanceChart_InvertedRange(t *testing.T) {
	p := NewPortfolio("retirement", MustParseDate("2024-01-01"))
	_, err := p.PerformanceChart(MustParseDate("2024-07-10"), MustParseDate("2024-07-01"), NewMarketData())
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("PerformanceChart() = %v, want ErrInvalidDate", err)
	}
}
