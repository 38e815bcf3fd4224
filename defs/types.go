package defs

import (
	"fmt"
	"math"
	"time"
)

// Series is a glucose trace on a homogeneous time grid. Values are in mg/dl;
// a NaN value marks a missing sample that still occupies its grid slot.
// A Series is treated as immutable once built: analysis code only reads it.
type Series struct {
	Times  []time.Time
	Values []float64
}

// NewSeries wraps the two vectors after checking that timestamps are strictly
// increasing and lie on a homogeneous grid. The slices are not copied.
func NewSeries(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf("times and values length mismatch: %d != %d", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return Series{}, fmt.Errorf("timestamps not strictly increasing at index %d", i)
		}
	}
	if len(times) > 2 {
		step := times[1].Sub(times[0])
		for i := 2; i < len(times); i++ {
			if times[i].Sub(times[i-1]) != step {
				return Series{}, fmt.Errorf("time grid not homogeneous at index %d", i)
			}
		}
	}
	return Series{Times: times, Values: values}, nil
}

func (s Series) Len() int {
	return len(s.Values)
}

func (s Series) IsEmpty() bool {
	return len(s.Values) == 0
}

// SampleMinutes returns the grid period in minutes, or 0 when the series has
// fewer than two samples.
func (s Series) SampleMinutes() float64 {
	if len(s.Times) < 2 {
		return 0
	}
	return s.Times[1].Sub(s.Times[0]).Minutes()
}

// SpanDays returns the elapsed time between the first and last sample in
// fractional days.
func (s Series) SpanDays() float64 {
	if len(s.Times) < 2 {
		return 0
	}
	return s.Times[len(s.Times)-1].Sub(s.Times[0]).Hours() / 24
}

// NonMissing returns the present values, in order.
func (s Series) NonMissing() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Days splits the series into calendar-day windows, midnight to midnight in
// the series' own clock. Windows share the underlying arrays.
func (s Series) Days() []Series {
	if s.IsEmpty() {
		return nil
	}
	var days []Series
	start := 0
	y, m, d := s.Times[0].Date()
	for i := 1; i < len(s.Times); i++ {
		yy, mm, dd := s.Times[i].Date()
		if yy != y || mm != m || dd != d {
			days = append(days, Series{Times: s.Times[start:i], Values: s.Values[start:i]})
			start, y, m, d = i, yy, mm, dd
		}
	}
	return append(days, Series{Times: s.Times[start:], Values: s.Values[start:]})
}
