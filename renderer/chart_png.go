package renderer

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/perriv/folio"
)

// ChartPNG renders a plot as a PNG bar chart and returns the raw image bytes.
// Bar heights are the plot intensities, i.e. scale ticks above the baseline.
func ChartPNG(title string, plot folio.ChartPlot) ([]byte, error) {
	if len(plot.Bars) < 2 {
		return nil, fmt.Errorf("need at least 2 buckets, got %d", len(plot.Bars))
	}

	bars := make([]chart.Value, 0, len(plot.Bars))
	for _, bar := range plot.Bars {
		bars = append(bars, chart.Value{
			Label: bar.Label,
			Value: float64(bar.Intensity),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("2563eb"),
				StrokeColor: drawing.ColorFromHex("2563eb"),
			},
		})
	}

	graph := chart.BarChart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth: 860 / len(bars),
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(folio.MaxChartTicks)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("cannot render chart: %w", err)
	}
	return buf.Bytes(), nil
}
