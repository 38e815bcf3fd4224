// Package variability computes glycemic variability indices over a glucose
// trace. Missing samples are ignored; a metric that cannot be computed from
// the present samples returns NaN.
package variability

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"glyco/defs"
	"glyco/ranges"
)

const congaHours = 4

// MeanGlucose returns the mean glucose level.
func MeanGlucose(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	m, _ := stats.Mean(values)
	return m
}

// MedianGlucose returns the median glucose level.
func MedianGlucose(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	m, _ := stats.Median(values)
	return m
}

// StdGlucose returns the sample standard deviation of the glucose level.
func StdGlucose(s defs.Series) float64 {
	return sampleStd(s.NonMissing())
}

// CVGlucose returns the coefficient of variation of glucose, in percent.
func CVGlucose(s defs.Series) float64 {
	return 100 * StdGlucose(s) / MeanGlucose(s)
}

// RangeGlucose returns the spanned glucose range.
func RangeGlucose(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// IQRGlucose returns the interquartile range of the glucose level.
func IQRGlucose(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) < 4 {
		return math.NaN()
	}
	iqr, err := stats.InterQuartileRange(values)
	if err != nil {
		return math.NaN()
	}
	return iqr
}

// AUCGlucoseOverBasal returns the area under the glucose curve shifted by the
// given basal value, as sample sums scaled by the grid period in minutes.
func AUCGlucoseOverBasal(s defs.Series, basal float64) float64 {
	values := s.NonMissing()
	period := s.SampleMinutes()
	if len(values) == 0 || period == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += (v - basal) * period
	}
	return sum
}

// AUCGlucose returns the area under the glucose curve.
func AUCGlucose(s defs.Series) float64 {
	return AUCGlucoseOverBasal(s, 0)
}

// GMI returns the glucose management indicator. Meaningful when at least
// 12 days of observation are available.
func GMI(s defs.Series) float64 {
	return 3.31 + 0.02392*MeanGlucose(s)
}

// COGI returns the continuous glucose monitoring index. Its time-in-range
// components are defined against the diabetes cutoffs regardless of the
// analysis target.
func COGI(s defs.Series) float64 {
	profile, _ := defs.TargetDiabetes.Profile()

	tir := ranges.TimeInTarget(s, profile) * 0.5

	tbr := math.Min(15, ranges.TimeInHypoglycemia(s, profile))
	tbr = (100 - 100.0/15*tbr) * 0.35

	gv := math.Min(math.Max(StdGlucose(s)/18.018, 1), 6)
	gv = (120 - 20*gv) * 0.15

	return tir + tbr + gv
}

// CONGA returns the continuous overall net glycemic action of order 4 hours:
// the deviation of the differences between each sample and the latest sample
// at least four hours older.
func CONGA(s defs.Series) float64 {
	lag := time.Duration(congaHours) * time.Hour
	var dc []float64
	j := -1
	for i := 1; i < s.Len(); i++ {
		cutoff := s.Times[i].Add(-lag)
		for j+1 < s.Len() && !s.Times[j+1].After(cutoff) {
			j++
		}
		if j >= 0 {
			dc = append(dc, s.Values[i]-s.Values[j])
		}
	}
	return sampleStd(dropMissing(dc))
}

// JIndex returns the J-index of the glucose level.
func JIndex(s defs.Series) float64 {
	sum := MeanGlucose(s) + StdGlucose(s)
	return 1e-3 * sum * sum
}

// MODD returns the mean of daily differences: the mean absolute difference
// between samples exactly 24 hours apart.
func MODD(s defs.Series) float64 {
	period := s.SampleMinutes()
	if period == 0 {
		return math.NaN()
	}
	lag := int(math.Round(24 * 60 / period))
	if lag < 1 || lag >= s.Len() {
		return math.NaN()
	}
	var diffs []float64
	for i := lag; i < s.Len(); i++ {
		d := math.Abs(s.Values[i] - s.Values[i-lag])
		if !math.IsNaN(d) {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return math.NaN()
	}
	m, _ := stats.Mean(diffs)
	return m
}

// SDDMIndex returns the standard deviation of the daily mean glucose levels.
func SDDMIndex(s defs.Series) float64 {
	var means []float64
	for _, day := range s.Days() {
		if m := MeanGlucose(day); !math.IsNaN(m) {
			means = append(means, m)
		}
	}
	return sampleStd(means)
}

// SDWIndex returns the mean of the within-day standard deviations.
func SDWIndex(s defs.Series) float64 {
	var stds []float64
	for _, day := range s.Days() {
		if sd := StdGlucose(day); !math.IsNaN(sd) {
			stds = append(stds, sd)
		}
	}
	if len(stds) == 0 {
		return math.NaN()
	}
	m, _ := stats.Mean(stds)
	return m
}

// GlucoseROC returns the per-sample glucose rate of change in mg/dl/min,
// computed over a 15-minute backward window. The first three slots have no
// window and are NaN, as is any slot where either window endpoint is
// missing; samples between the endpoints do not enter the difference.
func GlucoseROC(s defs.Series) []float64 {
	period := s.SampleMinutes()
	roc := make([]float64, s.Len())
	for i := range roc {
		if i < 3 || period == 0 {
			roc[i] = math.NaN()
			continue
		}
		roc[i] = (s.Values[i] - s.Values[i-3]) / (3 * period)
	}
	return roc
}

// StdGlucoseROC returns the deviation of the glucose rate of change.
func StdGlucoseROC(s defs.Series) float64 {
	return sampleStd(dropMissing(GlucoseROC(s)))
}

// sampleStd is the n-1 normalized deviation, NaN below two values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return math.NaN()
	}
	return sd
}

func dropMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
