// Package processing prepares raw CGM exports for analysis: retiming onto a
// homogeneous grid, imputation of short missing runs, and detrending.
package processing

import (
	"fmt"
	"math"
	"time"

	"glyco/defs"
	"glyco/inspection"
)

// Retime maps raw, possibly ragged samples onto a fresh homogeneous grid
// with the given step. The grid starts at the first raw timestamp with
// seconds dropped and ends before the last raw timestamp; each raw sample is
// assigned to its nearest slot, conflicts are averaged, and slots with no
// sample are left missing.
func Retime(times []time.Time, values []float64, stepMinutes int) (defs.Series, error) {
	if len(times) != len(values) {
		return defs.Series{}, fmt.Errorf("times and values length mismatch: %d != %d", len(times), len(values))
	}
	if stepMinutes <= 0 {
		return defs.Series{}, fmt.Errorf("retiming step must be positive, got %d", stepMinutes)
	}
	if len(times) == 0 {
		return defs.Series{}, nil
	}

	step := time.Duration(stepMinutes) * time.Minute
	start := times[0].Truncate(time.Minute)
	end := times[len(times)-1]

	var grid []time.Time
	for t := start; t.Before(end); t = t.Add(step) {
		grid = append(grid, t)
	}
	if len(grid) == 0 {
		return defs.Series{}, nil
	}

	sums := make([]float64, len(grid))
	counts := make([]int, len(grid))
	for i, t := range times {
		if math.IsNaN(values[i]) {
			continue
		}
		// Nearest slot, ties to the earlier one.
		slot := int(math.Ceil(float64(t.Sub(start))/float64(step) - 0.5))
		if slot < 0 {
			slot = 0
		}
		if slot >= len(grid) {
			slot = len(grid) - 1
		}
		sums[slot] += values[i]
		counts[slot]++
	}

	out := make([]float64, len(grid))
	for i := range out {
		if counts[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sums[i] / float64(counts[i])
	}
	return defs.NewSeries(grid, out)
}

// Impute fills missing runs shorter than maxGapMinutes by linear
// interpolation between the island's neighbors. Runs at either end of the
// series have no anchor on one side and are left missing. Returns a derived
// series; the input is not modified.
func Impute(s defs.Series, maxGapMinutes int) defs.Series {
	period := s.SampleMinutes()
	if period == 0 {
		return s
	}
	th := int(math.Round(float64(maxGapMinutes) / period))
	scan := inspection.FindNanIslands(s, th)

	values := make([]float64, s.Len())
	copy(values, s.Values)
	for k := range scan.Starts {
		start, end := scan.Starts[k], scan.Ends[k]
		if end-start+1 >= th {
			continue
		}
		left, right := start-1, end+1
		if left < 0 || right >= s.Len() {
			continue
		}
		slope := (values[right] - values[left]) / float64(right-left)
		for j := start; j <= end; j++ {
			values[j] = values[left] + slope*float64(j-left)
		}
	}
	return defs.Series{Times: s.Times, Values: values}
}

// Detrend flattens the series against the straight line through its first
// and last present samples. Returns a derived series; the input is not
// modified.
func Detrend(s defs.Series) defs.Series {
	values := make([]float64, s.Len())
	copy(values, s.Values)

	first, last := -1, -1
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	period := s.SampleMinutes()
	if first < 0 || first == last || period == 0 {
		return defs.Series{Times: s.Times, Values: values}
	}

	slope := (s.Values[last] - s.Values[first]) / (float64(last-first) * period)
	for i := range values {
		values[i] -= slope * float64(i) * period
	}
	return defs.Series{Times: s.Times, Values: values}
}
