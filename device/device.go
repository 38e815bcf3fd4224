// Package device imports CSV exports from CGM systems into raw timestamp and
// glucose vectors. The output keeps the device's original, possibly ragged
// sampling; callers retime before analysis.
package device

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// mmolConversion converts mmol/l readings to mg/dl.
const mmolConversion = 18.018

// ReadDexcomFile reads a CSV export from the Dexcom CGM system.
func ReadDexcomFile(path string) ([]time.Time, []float64, error) {
	return readFile(path, ParseDexcom)
}

// ReadEversenseFile reads a CSV export from the Eversense CGM system.
func ReadEversenseFile(path string) ([]time.Time, []float64, error) {
	return readFile(path, ParseEversense)
}

// ReadLibreFile reads a CSV export from the FreeStyle Libre CGM system.
func ReadLibreFile(path string) ([]time.Time, []float64, error) {
	return readFile(path, ParseLibre)
}

func readFile(path string, parse func(io.Reader) ([]time.Time, []float64, error)) ([]time.Time, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return parse(f)
}

// sortSamples orders the parallel vectors by timestamp.
func sortSamples(times []time.Time, values []float64) {
	idx := make([]int, len(times))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return times[idx[a]].Before(times[idx[b]]) })

	t := make([]time.Time, len(times))
	v := make([]float64, len(values))
	for i, j := range idx {
		t[i], v[i] = times[j], values[j]
	}
	copy(times, t)
	copy(values, v)
}

func rowError(device string, row int, err error) error {
	return fmt.Errorf("%s export row %d: %w", device, row, err)
}
