// Package ranges computes time-in-range percentages over the present samples
// of a glucose trace. Every function returns NaN when the series holds no
// usable values.
package ranges

import (
	"math"

	"glyco/defs"
)

// TimeInTarget returns the share of samples strictly inside the target band.
func TimeInTarget(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenRange(s, p.Low, p.High, false, false)
}

// TimeInTightTarget returns the share of samples strictly inside the tight
// band.
func TimeInTightTarget(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenRange(s, p.TightLow, p.TightHigh, false, false)
}

func TimeInHypoglycemia(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenBelowRange(s, p.Low, true)
}

func TimeInL1Hypoglycemia(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenRange(s, p.SevereLow, p.Low, false, true)
}

func TimeInL2Hypoglycemia(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenBelowRange(s, p.SevereLow, true)
}

func TimeInHyperglycemia(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenAboveRange(s, p.High, true)
}

func TimeInL1Hyperglycemia(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenRange(s, p.High, p.SevereHigh, true, false)
}

func TimeInL2Hyperglycemia(s defs.Series, p defs.Profile) float64 {
	return TimeInGivenAboveRange(s, p.SevereHigh, true)
}

// TimeInGivenRange returns the percentage of present samples between lo and
// hi, with each bound inclusive or exclusive as requested.
func TimeInGivenRange(s defs.Series, lo, hi float64, incLo, incHi bool) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	count := 0
	for _, v := range values {
		okLo := v > lo || incLo && v == lo
		okHi := v < hi || incHi && v == hi
		if okLo && okHi {
			count++
		}
	}
	return 100 * float64(count) / float64(len(values))
}

// TimeInGivenAboveRange returns the percentage of present samples above th.
func TimeInGivenAboveRange(s defs.Series, th float64, incTh bool) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	count := 0
	for _, v := range values {
		if v > th || incTh && v == th {
			count++
		}
	}
	return 100 * float64(count) / float64(len(values))
}

// TimeInGivenBelowRange returns the percentage of present samples below th.
func TimeInGivenBelowRange(s defs.Series, th float64, incTh bool) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	count := 0
	for _, v := range values {
		if v < th || incTh && v == th {
			count++
		}
	}
	return 100 * float64(count) / float64(len(values))
}
