package device

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

const (
	eversenseTimeLayout = "02-January-2006 3:04 PM"

	eversenseDateColumn  = 0
	eversenseTimeColumn  = 1
	eversenseValueColumn = 2
	eversenseUnitColumn  = 3
)

// ParseEversense parses an Eversense CSV export. Readings reported in
// mmol/l are converted to mg/dl.
func ParseEversense(r io.Reader) ([]time.Time, []float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var times []time.Time
	var values []float64
	for i, row := range rows {
		if i == 0 || len(row) <= eversenseUnitColumn {
			continue
		}
		t, err := time.Parse(eversenseTimeLayout, row[eversenseDateColumn]+" "+row[eversenseTimeColumn])
		if err != nil {
			return nil, nil, rowError("eversense", i+1, err)
		}
		g, err := strconv.ParseFloat(row[eversenseValueColumn], 64)
		if err != nil {
			return nil, nil, rowError("eversense", i+1, err)
		}
		if row[eversenseUnitColumn] != "mg/dL" {
			g *= mmolConversion
		}
		times = append(times, t)
		values = append(values, g)
	}
	sortSamples(times, values)
	return times, values, nil
}
