// Package chart renders statistic distributions as static PNG charts.
package chart

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Outcome palette shared by all charts: blue for everything, green for
// wins, red for losses.
var (
	ColorAll    = color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	ColorWins   = color.NRGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	ColorLosses = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}

	meanLineColor = color.NRGBA{R: 0xff, A: 0xff}
)

// Group is a labelled set of observations to chart.
type Group struct {
	Label  string
	Values []float64
	Color  color.NRGBA
}

// OutcomeGroups builds the conventional all/wins/losses chart groups.
func OutcomeGroups(all, wins, losses []float64) []Group {
	return []Group{
		{Label: "All Episodes", Values: all, Color: ColorAll},
		{Label: "Wins", Values: wins, Color: ColorWins},
		{Label: "Losses", Values: losses, Color: ColorLosses},
	}
}

// translucent lightens a fill color the way the box plots want it.
func translucent(c color.NRGBA) color.NRGBA {
	c.A = 0x99
	return c
}

// writePNG renders an assembled canvas to path.
func writePNG(img *vgimg.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// drawAligned lays out a single row of plots on one canvas and writes it
// as a PNG.
func drawAligned(plots []*plot.Plot, path string, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(plots),
		PadX: vg.Millimeter * 2,
		PadY: vg.Millimeter * 2,
	}

	grid := [][]*plot.Plot{plots}
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range plots {
		if p != nil {
			p.Draw(canvases[0][i])
		}
	}

	return writePNG(img, path)
}
