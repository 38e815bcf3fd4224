package device

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

const (
	dexcomTimeLayout = "2006-01-02T15:04:05"

	dexcomTimeColumn  = 1
	dexcomEventColumn = 2
	dexcomValueColumn = 7

	// Out-of-range readings are reported as text and clamped to the
	// sensor's measurable limits.
	dexcomLowClamp  = 39
	dexcomHighClamp = 401
)

// ParseDexcom parses a Dexcom CSV export, keeping only estimated glucose
// value rows. "Low" and "High" readings are clamped to the sensor limits.
func ParseDexcom(r io.Reader) ([]time.Time, []float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var times []time.Time
	var values []float64
	for i, row := range rows {
		if i == 0 || len(row) <= dexcomValueColumn || row[dexcomEventColumn] != "EGV" {
			continue
		}
		t, err := time.Parse(dexcomTimeLayout, row[dexcomTimeColumn])
		if err != nil {
			return nil, nil, rowError("dexcom", i+1, err)
		}
		var g float64
		switch row[dexcomValueColumn] {
		case "Low":
			g = dexcomLowClamp
		case "High":
			g = dexcomHighClamp
		default:
			g, err = strconv.ParseFloat(row[dexcomValueColumn], 64)
			if err != nil {
				return nil, nil, rowError("dexcom", i+1, err)
			}
		}
		times = append(times, t)
		values = append(values, g)
	}
	sortSamples(times, values)
	return times, values, nil
}
