package variability

import (
	"math"

	"github.com/montanaflynn/stats"

	"glyco/defs"
)

// ExcursionThreshold is the amplitude in mg/dl a glycemic excursion must
// exceed to count toward the excursion frequency index.
const ExcursionThreshold = 75

// dayExcursions returns the signed differences between consecutive turning
// point values for one day; ok is false for sentinel days.
func dayExcursions(day defs.Series) (excursions []float64, ok bool) {
	points := TurningPoints(day.Values)
	if points == nil {
		return nil, false
	}
	for k := 1; k < len(points); k++ {
		excursions = append(excursions, day.Values[points[k]]-day.Values[points[k-1]])
	}
	return excursions, true
}

// overDays averages a per-day reduction of the excursion list across the
// calendar days spanned by the series, skipping sentinel days. NaN when no
// day contributes.
func overDays(s defs.Series, reduce func([]float64) float64) float64 {
	var dayValues []float64
	for _, day := range s.Days() {
		if excursions, ok := dayExcursions(day); ok {
			dayValues = append(dayValues, reduce(excursions))
		}
	}
	if len(dayValues) == 0 {
		return math.NaN()
	}
	m, _ := stats.Mean(dayValues)
	return m
}

// MagePlusIndex returns the mean amplitude of positive glycemic excursions:
// the per-day mean of the positive turning-point differences, zero for days
// without any, averaged across days.
func MagePlusIndex(s defs.Series) float64 {
	return overDays(s, func(excursions []float64) float64 {
		sum, count := 0.0, 0
		for _, e := range excursions {
			if e > 0 {
				sum += e
				count++
			}
		}
		if count == 0 {
			return 0
		}
		return sum / float64(count)
	})
}

// MageMinusIndex mirrors MagePlusIndex on negative excursions, reported as a
// positive magnitude.
func MageMinusIndex(s defs.Series) float64 {
	return overDays(s, func(excursions []float64) float64 {
		sum, count := 0.0, 0
		for _, e := range excursions {
			if e < 0 {
				sum -= e
				count++
			}
		}
		if count == 0 {
			return 0
		}
		return sum / float64(count)
	})
}

// MageIndex returns the mean amplitude of glycemic excursions, the average
// of the positive and negative indices.
func MageIndex(s defs.Series) float64 {
	return (MagePlusIndex(s) + MageMinusIndex(s)) / 2
}

// EFIndex returns the excursion frequency: the per-day count of excursions
// larger than ExcursionThreshold in magnitude, averaged across days.
func EFIndex(s defs.Series) float64 {
	return overDays(s, func(excursions []float64) float64 {
		count := 0
		for _, e := range excursions {
			if math.Abs(e) > ExcursionThreshold {
				count++
			}
		}
		return float64(count)
	})
}
