package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BoxPlot renders one box per group on a shared axis. Empty groups keep
// their axis slot but draw no box.
func BoxPlot(path, title, yLabel string, groups []Group) error {
	p := plot.New()
	if title == "" {
		title = "Distribution by Episode Outcome"
	}
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.X.Label.Text = "Episode Category"
	p.Add(plotter.NewGrid())

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = fmt.Sprintf("%s (n=%d)", g.Label, len(g.Values))
		if len(g.Values) == 0 {
			continue
		}

		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("box for %q: %w", g.Label, err)
		}
		box.FillColor = translucent(g.Color)
		p.Add(box)
	}
	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
