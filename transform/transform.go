// Package transform computes glycemic transformation scores: composite
// indices built on nonlinear rescalings of the glucose axis.
package transform

import (
	"math"

	"glyco/defs"
)

// Rodbard index constants.
const (
	hypoExponent  = 2.0
	hypoScale     = 30.0
	hypoLimit     = 70.0
	hyperExponent = 1.1
	hyperScale    = 30.0
	hyperLimit    = 180.0
)

// mrReference is the Schlichtkrull reference glucose level.
const mrReference = 100.0

// MRIndex returns the Schlichtkrull M-value against the standard reference
// level of 100 mg/dl.
func MRIndex(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range values {
		d := math.Abs(math.Log10(g / mrReference))
		sum += 1000 * d * d * d
	}
	return sum / float64(len(values))
}

// HypoIndex returns the Rodbard hypoglycemic index.
func HypoIndex(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range values {
		if g < hypoLimit {
			sum += math.Pow(hypoLimit-g, hypoExponent)
		}
	}
	return sum / (float64(len(values)) * hypoScale)
}

// HyperIndex returns the Rodbard hyperglycemic index.
func HyperIndex(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range values {
		if g > hyperLimit {
			sum += math.Pow(g-hyperLimit, hyperExponent)
		}
	}
	return sum / (float64(len(values)) * hyperScale)
}

// IGC returns the index of glycemic control, the sum of the hypo and hyper
// indices.
func IGC(s defs.Series) float64 {
	return HypoIndex(s) + HyperIndex(s)
}

// grade maps one glucose value onto the GRADE scale.
func grade(g float64) float64 {
	d := math.Log10(math.Log10(g/18)) + 0.16
	return 425 * d * d
}

// GradeScore returns the mean GRADE value of the trace.
func GradeScore(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range values {
		sum += grade(g)
	}
	return sum / float64(len(values))
}

// GradeHypoScore returns the share of the total GRADE mass contributed by
// hypoglycemic samples, in percent.
func GradeHypoScore(s defs.Series) float64 {
	return gradeShare(s, func(g float64) bool { return g < hypoLimit })
}

// GradeHyperScore returns the share of the total GRADE mass contributed by
// hyperglycemic samples, in percent.
func GradeHyperScore(s defs.Series) float64 {
	return gradeShare(s, func(g float64) bool { return g > hyperLimit })
}

// GradeEuScore returns the euglycemic remainder of the GRADE split.
func GradeEuScore(s defs.Series) float64 {
	return 100 - (GradeHypoScore(s) + GradeHyperScore(s))
}

func gradeShare(s defs.Series, in func(float64) bool) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	part, total := 0.0, 0.0
	for _, g := range values {
		v := grade(g)
		total += v
		if in(g) {
			part += v
		}
	}
	return 100 * part / total
}
