package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func checkPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if len(data) < len(pngMagic) || !bytes.Equal(data[:len(pngMagic)], pngMagic) {
		t.Errorf("%s is not a PNG file", path)
	}
}

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	groups := OutcomeGroups(
		[]float64{1, 2, 2, 3, 5, 8, 13, 21},
		[]float64{1, 2, 3},
		[]float64{5, 8, 13, 21},
	)
	if err := Histogram(path, "Step Distribution", "Steps", 10, groups); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	checkPNG(t, path)
}

func TestHistogramEmptyGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	groups := OutcomeGroups([]float64{1, 2, 3}, nil, []float64{1, 2, 3})
	if err := Histogram(path, "", "Steps", 0, groups); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	checkPNG(t, path)
}

func TestBoxPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.png")
	groups := OutcomeGroups(
		[]float64{0, 1, 1, 2, 4, 9},
		[]float64{0, 1},
		[]float64{1, 2, 4, 9},
	)
	if err := BoxPlot(path, "", "Number of Repeated Actions", groups); err != nil {
		t.Fatalf("BoxPlot() error = %v", err)
	}
	checkPNG(t, path)
}

func TestBoxPlotEmptyGroup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.png")
	groups := OutcomeGroups([]float64{1, 2, 3}, nil, nil)
	if err := BoxPlot(path, "Repeats", "Repeats", groups); err != nil {
		t.Fatalf("BoxPlot() error = %v", err)
	}
	checkPNG(t, path)
}

func TestScatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	points := []Point{
		{Steps: 10, RepeatPct: 5.5, Win: true},
		{Steps: 40, RepeatPct: 22.0, Win: false},
		{Steps: 100, RepeatPct: 61.3, Win: false},
	}
	if err := Scatter(path, "", points); err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	checkPNG(t, path)
}

func TestScatterNoPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	if err := Scatter(path, "Empty", nil); err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	checkPNG(t, path)
}
