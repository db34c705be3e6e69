package renderer

import (
	"fmt"
	"strings"

	"github.com/perriv/folio"
)

// Chart renders a plot as a fixed-width text bar chart, one bucket per line.
// Bars grow with intensity; a dot marks a bucket without data.
func Chart(plot folio.ChartPlot) string {
	var b strings.Builder

	width := 0
	for _, bar := range plot.Bars {
		if len(bar.Label) > width {
			width = len(bar.Label)
		}
	}

	for _, bar := range plot.Bars {
		fmt.Fprintf(&b, "%-*s |", width, bar.Label)
		if bar.Intensity == 0 {
			b.WriteString(" ·\n")
			continue
		}
		b.WriteString(" ")
		b.WriteString(strings.Repeat("█", bar.Intensity))
		b.WriteString("\n")
	}

	scale := "1 unit"
	if plot.Scale > 0 {
		scale = Amount(plot.Scale)
	}
	fmt.Fprintf(&b, "\n%s resolution, baseline %s, %s per tick\n",
		plot.Resolution, Amount(float64(plot.Baseline)), scale)
	return b.String()
}
