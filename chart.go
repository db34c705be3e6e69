package folio

import "fmt"

// MaxChartTicks is the fixed height budget of a performance chart, in
// intensity units.
const MaxChartTicks = 50

// LookbackDays bounds the backward walk used to substitute a value for a
// zero-valued bucket date (typically a non-trading day). When the walk finds
// nothing the bucket keeps its zero.
const LookbackDays = 10

// ChartBar is one bar of a chart: a bucket label and its integer intensity.
type ChartBar struct {
	Label     string
	Intensity int
}

// ChartPlot is a bounded integer rendering of a value series: per-bucket bar
// intensities over a linear scale above a baseline. Zero-intensity bars mark
// buckets without data. Built once per query; immutable.
type ChartPlot struct {
	Bars       []ChartBar
	Baseline   int
	Scale      float64
	Resolution Resolution
}

// ChartPoint is one input sample for BuildChart: a bucket label and the
// portfolio value on the bucket date. A zero value means "no data".
type ChartPoint struct {
	Label string
	Value float64
}

// BuildChart maps a value series onto integer bar intensities.
//
// The scale step is (highest-lowest)/(maxTicks-2) over the non-zero values
// only; each non-zero value maps to 1 + floor((value-lowest)/step). When the
// step falls below 1 the chart degrades to one unit per value unit:
// 1 + floor(value-lowest). Zero values map to intensity 0. The baseline is
// the lowest non-zero value (0 when there is none) and the scale is the step
// (0 when degenerate).
func BuildChart(points []ChartPoint, maxTicks int) ChartPlot {
	plot := ChartPlot{Bars: make([]ChartBar, 0, len(points))}

	var lowest, highest float64
	seen := false
	for _, pt := range points {
		if pt.Value == 0 {
			continue
		}
		if !seen || pt.Value < lowest {
			lowest = pt.Value
		}
		if !seen || pt.Value > highest {
			highest = pt.Value
		}
		seen = true
	}
	if !seen {
		for _, pt := range points {
			plot.Bars = append(plot.Bars, ChartBar{Label: pt.Label})
		}
		return plot
	}

	step := (highest - lowest) / float64(maxTicks-2)
	for _, pt := range points {
		bar := ChartBar{Label: pt.Label}
		switch {
		case pt.Value == 0:
			// no data
		case step < 1:
			bar.Intensity = 1 + int(pt.Value-lowest)
		default:
			bar.Intensity = 1 + int((pt.Value-lowest)/step)
		}
		plot.Bars = append(plot.Bars, bar)
	}
	plot.Baseline = int(lowest)
	if step >= 1 {
		plot.Scale = step
	}
	return plot
}

// PerformanceChart renders the portfolio value over [start, end] as a
// fixed-height bar chart: the range is bucketed at an adaptive resolution,
// each bucket date is valued through the oracle, and zero-valued buckets look
// back up to LookbackDays for the nearest prior non-zero valuation.
func (p *Portfolio) PerformanceChart(start, end Date, oracle PriceOracle) (ChartPlot, error) {
	if end.Before(start) {
		return ChartPlot{}, fmt.Errorf("%w: range %s to %s is inverted", ErrInvalidDate, start, end)
	}
	buckets, res, err := BucketRange(start, end)
	if err != nil {
		return ChartPlot{}, err
	}

	points := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		value := p.valueAt(b.On, oracle)
		if value.IsZero() {
			for i := 1; i <= LookbackDays; i++ {
				if earlier := p.valueAt(b.On.Add(-i), oracle); !earlier.IsZero() {
					value = earlier
					break
				}
			}
		}
		points = append(points, ChartPoint{Label: b.Label, Value: value.InexactFloat64()})
	}

	plot := BuildChart(points, MaxChartTicks)
	plot.Resolution = res
	return plot, nil
}
