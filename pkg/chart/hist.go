package chart

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultBins is the histogram bin count when none is configured.
const DefaultBins = 20

// Histogram renders one panel per group side by side, each with a dashed
// mean line. A non-empty title is placed above the middle panel.
func Histogram(path, title, xLabel string, bins int, groups []Group) error {
	if bins <= 0 {
		bins = DefaultBins
	}

	plots := make([]*plot.Plot, len(groups))
	for i, g := range groups {
		p, err := histPanel(g, xLabel, bins)
		if err != nil {
			return fmt.Errorf("histogram panel %q: %w", g.Label, err)
		}
		plots[i] = p
	}

	if title != "" && len(plots) > 0 {
		mid := plots[len(plots)/2]
		mid.Title.Text = title + "\n" + mid.Title.Text
	}

	return drawAligned(plots, path, 15*vg.Inch, 5*vg.Inch)
}

func histPanel(g Group, xLabel string, bins int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (n=%d)", g.Label, len(g.Values))
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Number of Episodes"
	p.Add(plotter.NewGrid())

	if len(g.Values) == 0 {
		return p, nil
	}

	h, err := plotter.NewHist(plotter.Values(g.Values), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = translucent(g.Color)
	p.Add(h)

	// Dashed vertical line at the mean, stretched to the tallest bin
	mean := stat.Mean(g.Values, nil)
	var tallest float64
	for _, bin := range h.Bins {
		if bin.Weight > tallest {
			tallest = bin.Weight
		}
	}

	meanLine, err := plotter.NewLine(plotter.XYs{{X: mean, Y: 0}, {X: mean, Y: tallest}})
	if err != nil {
		return nil, err
	}
	meanLine.LineStyle.Color = meanLineColor
	meanLine.LineStyle.Width = vg.Points(2)
	meanLine.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(meanLine)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f", mean), meanLine)
	p.Legend.Top = true

	return p, nil
}
