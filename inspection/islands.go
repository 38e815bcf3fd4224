package inspection

import (
	"math"

	"glyco/defs"
)

// IslandScan classifies the maximal runs of missing samples in a series.
// Starts and Ends hold the first and last index (inclusive) of each run;
// Short and Long hold every index belonging to a run shorter than, or at
// least as long as, the scan threshold.
type IslandScan struct {
	Short  []int
	Long   []int
	Starts []int
	Ends   []int
}

// FindNanIslands locates the maximal runs of missing samples and classifies
// each by length against th, expressed in samples. A run of length >= th is
// long, so th <= 1 makes every run long, a single missing sample included.
func FindNanIslands(s defs.Series, th int) IslandScan {
	var scan IslandScan
	n := s.Len()
	i := 0
	for i < n {
		if !math.IsNaN(s.Values[i]) {
			i++
			continue
		}
		start := i
		for i < n && math.IsNaN(s.Values[i]) {
			i++
		}
		end := i - 1
		scan.Starts = append(scan.Starts, start)
		scan.Ends = append(scan.Ends, end)
		if end-start+1 >= th {
			for j := start; j <= end; j++ {
				scan.Long = append(scan.Long, j)
			}
		} else {
			for j := start; j <= end; j++ {
				scan.Short = append(scan.Short, j)
			}
		}
	}
	return scan
}
