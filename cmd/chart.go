package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/perriv/folio"
	"github.com/perriv/folio/renderer"
)

type chartCmd struct {
	portfolio string
	start     string
	end       string
	pngFile   string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "render the portfolio performance over a date span" }
func (*chartCmd) Usage() string {
	return `fol chart -p <portfolio> -s <start> [-d <end>] [-png <file>]

  Buckets the date span at an adaptive granularity (daily to yearly), values
  the portfolio on each bucket date, and renders the result as a text bar
  chart on stdout, or as a PNG image with -png.

`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio to chart.")
	f.StringVar(&c.start, "s", "-1y", "Start of the date span.")
	f.StringVar(&c.end, "d", "-1d", "End of the date span (defaults to yesterday).")
	f.StringVar(&c.pngFile, "png", "", "Write a PNG image to this file instead of a text chart.")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, p, err := loadPortfolio(c.portfolio)
	if err != nil {
		return fail(err)
	}
	start, err := folio.ParseDate(c.start)
	if err != nil {
		return fail(err)
	}
	end, err := folio.ParseDate(c.end)
	if err != nil {
		return fail(err)
	}
	_, market, err := loadMarketData()
	if err != nil {
		return fail(err)
	}

	plot, err := p.PerformanceChart(start, end, market)
	if err != nil {
		return fail(err)
	}

	if c.pngFile != "" {
		png, err := renderer.ChartPNG(c.portfolio, plot)
		if err != nil {
			return fail(err)
		}
		if err := os.WriteFile(c.pngFile, png, 0o644); err != nil {
			return fail(err)
		}
		fmt.Printf("wrote %s\n", c.pngFile)
		return subcommands.ExitSuccess
	}

	fmt.Print(renderer.Chart(plot))
	return subcommands.ExitSuccess
}
