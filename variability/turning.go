package variability

import "math"

// TurningPoints reduces one calendar day of samples to the indices of its
// significant local extrema. The reduction runs in five passes over a working
// candidate list: local extrema extraction with both endpoints retained
// unconditionally, a both-neighbor insignificance prune against the
// within-day sample deviation, extremum re-localization over candidate
// triples with work-list deletion of monotonic middles, edge pruning, and a
// final either-neighbor prune. Successive differences between the retained
// values are the day's glycemic excursions.
//
// Returns nil for days with three or fewer samples, or with too few present
// samples to define the within-day deviation.
func TurningPoints(values []float64) []int {
	if len(values) <= 3 {
		return nil
	}
	stdWithin := sampleStd(dropMissing(values))
	if math.IsNaN(stdWithin) {
		return nil
	}

	// Pass 1: every local maximum and minimum plus both endpoints.
	cands := []int{0}
	for i := 1; i < len(values)-1; i++ {
		if values[i] > values[i-1] && values[i] > values[i+1] ||
			values[i] < values[i-1] && values[i] < values[i+1] {
			cands = append(cands, i)
		}
	}
	cands = append(cands, len(values)-1)

	// Pass 2: drop interior candidates insignificant on both sides.
	cands = pruneInterior(values, cands, stdWithin, true)

	// Pass 3: re-localize each candidate triple onto true extrema; a middle
	// candidate with monotonic slopes is not a turning point, so it is
	// removed and the triple at the same position retried.
	i := 0
	for i+2 < len(cands) {
		prev, curr, next := cands[i], cands[i+1], cands[i+2]
		rise, fall := values[curr]-values[prev], values[next]-values[curr]
		switch {
		case rise < 0 && fall > 0: // minimum
			curr = argMin(values, prev, next)
			cands[i] = argMax(values, prev, curr-1)
			cands[i+1] = curr
			cands[i+2] = argMax(values, curr+1, next)
			i++
		case rise > 0 && fall < 0: // maximum
			curr = argMax(values, prev, next)
			cands[i] = argMin(values, prev, curr-1)
			cands[i+1] = curr
			cands[i+2] = argMin(values, curr+1, next)
			i++
		default:
			cands = append(cands[:i+1], cands[i+2:]...)
		}
	}

	// Pass 4: drop an edge candidate insignificant against its one neighbor.
	if len(cands) >= 2 && math.Abs(values[cands[0]]-values[cands[1]]) < stdWithin {
		cands = cands[1:]
	}
	if n := len(cands); n >= 2 && math.Abs(values[cands[n-1]]-values[cands[n-2]]) < stdWithin {
		cands = cands[:n-1]
	}

	// Pass 5: drop interior candidates insignificant on either side.
	return pruneInterior(values, cands, stdWithin, false)
}

// pruneInterior removes interior candidates whose difference from their
// current neighbors falls below std; both requires insignificance on both
// sides, otherwise one side suffices. Comparisons against a missing value
// never hold, so candidates flanked by missing samples survive.
func pruneInterior(values []float64, cands []int, std float64, both bool) []int {
	i := 1
	for i < len(cands)-1 {
		left := math.Abs(values[cands[i]] - values[cands[i-1]])
		right := math.Abs(values[cands[i]] - values[cands[i+1]])
		var drop bool
		if both {
			drop = left < std && right < std
		} else {
			drop = left < std || right < std
		}
		if drop {
			cands = append(cands[:i], cands[i+1:]...)
		} else {
			i++
		}
	}
	return cands
}

// argMin returns the index of the smallest present value in [lo, hi],
// preferring the earliest on ties; lo when the window holds no present value.
func argMin(values []float64, lo, hi int) int {
	best := lo
	found := false
	for i := lo; i <= hi; i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		if !found || values[i] < values[best] {
			best, found = i, true
		}
	}
	return best
}

func argMax(values []float64, lo, hi int) int {
	best := lo
	found := false
	for i := lo; i <= hi; i++ {
		if math.IsNaN(values[i]) {
			continue
		}
		if !found || values[i] > values[best] {
			best, found = i, true
		}
	}
	return best
}
