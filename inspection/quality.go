package inspection

import (
	"math"

	"glyco/defs"
)

// NumberDaysOfObservation returns the elapsed time between the first and
// last sample in fractional days, NaN for an empty series.
func NumberDaysOfObservation(s defs.Series) float64 {
	if s.IsEmpty() {
		return math.NaN()
	}
	return s.SpanDays()
}

// MissingGlucosePercentage returns the share of missing samples, in percent.
func MissingGlucosePercentage(s defs.Series) float64 {
	if s.IsEmpty() {
		return math.NaN()
	}
	missing := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			missing++
		}
	}
	return 100 * float64(missing) / float64(s.Len())
}
