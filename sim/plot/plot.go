// Package plot renders simulation statistics as charts.
package plot

import (
	"fmt"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveHitRate renders the hit-rate-over-time series as a line chart and
// writes it to path. The image format follows the file extension (.png,
// .svg, .pdf). An empty series is an error: there is nothing to draw.
func SaveHitRate(samples []float64, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("no hit-rate samples to plot")
	}

	pts := make(plotter.XYs, len(samples))
	for i, rate := range samples {
		pts[i].X = float64(i + 1)
		pts[i].Y = rate
	}

	p := gplot.New()
	p.Title.Text = "Cache Hit Rate Over Time"
	p.X.Label.Text = "Access Number"
	p.Y.Label.Text = "Hit Rate (%)"
	p.Y.Min, p.Y.Max = 0, 100
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building hit-rate line: %w", err)
	}
	p.Add(line)
	p.Legend.Add("Hit Rate (%)", line)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving hit-rate plot: %w", err)
	}
	return nil
}
