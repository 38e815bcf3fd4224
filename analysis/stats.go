package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// pairedTTest returns the two-sided p-value of a paired t-test on two
// equal-length samples. NaN when fewer than two complete pairs exist.
func pairedTTest(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	diffs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		diffs = append(diffs, x[i]-y[i])
	}
	if len(diffs) < 2 {
		return math.NaN()
	}
	mean, sd := meanStd(diffs)
	if sd == 0 {
		if mean == 0 {
			return 1
		}
		return 0
	}
	t := mean / (sd / math.Sqrt(float64(len(diffs))))
	return twoSidedP(t, float64(len(diffs)-1))
}

// welchTTest returns the two-sided p-value of Welch's unequal-variance
// t-test with Satterthwaite degrees of freedom.
func welchTTest(x, y []float64) float64 {
	xs := present(x)
	ys := present(y)
	if len(xs) < 2 || len(ys) < 2 {
		return math.NaN()
	}
	mx, sx := meanStd(xs)
	my, sy := meanStd(ys)
	vx := sx * sx / float64(len(xs))
	vy := sy * sy / float64(len(ys))
	if vx+vy == 0 {
		if mx == my {
			return 1
		}
		return 0
	}
	t := (mx - my) / math.Sqrt(vx+vy)
	df := (vx + vy) * (vx + vy) /
		(vx*vx/float64(len(xs)-1) + vy*vy/float64(len(ys)-1))
	return twoSidedP(t, df)
}

func twoSidedP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

func meanStd(values []float64) (mean, sd float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(values)-1))
}

func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
