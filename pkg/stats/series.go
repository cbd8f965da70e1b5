package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series accumulates per-episode scalar observations for one metric.
// Summary accessors follow the reporting convention of returning 0 on an
// empty series rather than NaN.
type Series struct {
	vals []float64
}

// Add appends an observation.
func (s *Series) Add(v float64) {
	s.vals = append(s.vals, v)
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.vals)
}

// Values returns the underlying observations in insertion order.
func (s *Series) Values() []float64 {
	return s.vals
}

// Mean returns the arithmetic mean, or 0 if empty.
func (s *Series) Mean() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	return stat.Mean(s.vals, nil)
}

// Min returns the smallest observation, or 0 if empty.
func (s *Series) Min() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	return floats.Min(s.vals)
}

// Max returns the largest observation, or 0 if empty.
func (s *Series) Max() float64 {
	if len(s.vals) == 0 {
		return 0
	}
	return floats.Max(s.vals)
}

// Sum returns the total of all observations.
func (s *Series) Sum() float64 {
	return floats.Sum(s.vals)
}

// Quartiles returns the 25th, 50th and 75th percentiles, or zeros if empty.
func (s *Series) Quartiles() (q1, median, q3 float64) {
	if len(s.vals) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(s.vals))
	copy(sorted, s.vals)
	sort.Float64s(sorted)
	q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	return q1, median, q3
}

// CountZero returns how many observations are exactly zero.
func (s *Series) CountZero() int {
	n := 0
	for _, v := range s.vals {
		if v == 0 {
			n++
		}
	}
	return n
}
