package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Point is one episode positioned by step count and repeat percentage.
type Point struct {
	Steps     float64
	RepeatPct float64
	Win       bool
}

// Scatter plots episode length against repeat rate, wins and losses in
// separate colors.
func Scatter(path, title string, points []Point) error {
	p := plot.New()
	if title == "" {
		title = "Repeated Actions vs Episode Length"
	}
	p.Title.Text = title
	p.X.Label.Text = "Episode Length (actions)"
	p.Y.Label.Text = "Repeated Actions (%)"
	p.Add(plotter.NewGrid())

	var wins, losses plotter.XYs
	for _, pt := range points {
		xy := plotter.XY{X: pt.Steps, Y: pt.RepeatPct}
		if pt.Win {
			wins = append(wins, xy)
		} else {
			losses = append(losses, xy)
		}
	}

	add := func(xys plotter.XYs, label string, c color.Color) error {
		if len(xys) == 0 {
			return nil
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("scatter for %s: %w", label, err)
		}
		s.GlyphStyle.Color = c
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (n=%d)", label, len(xys)), s)
		return nil
	}

	if err := add(wins, "Wins", ColorWins); err != nil {
		return err
	}
	if err := add(losses, "Losses", ColorLosses); err != nil {
		return err
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
