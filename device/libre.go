package device

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

const (
	libreTimeLayout = "02-01-2006 3:04 PM"

	libreHeaderRows  = 2
	libreDateColumn  = 3
	libreTimeColumn  = 4
	libreValueColumn = 6
)

// ParseLibre parses a FreeStyle Libre CSV export.
func ParseLibre(r io.Reader) ([]time.Time, []float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var times []time.Time
	var values []float64
	for i, row := range rows {
		if i < libreHeaderRows || len(row) <= libreValueColumn {
			continue
		}
		t, err := time.Parse(libreTimeLayout, row[libreDateColumn]+" "+row[libreTimeColumn])
		if err != nil {
			return nil, nil, rowError("libre", i+1, err)
		}
		g, err := strconv.ParseFloat(row[libreValueColumn], 64)
		if err != nil {
			return nil, nil, rowError("libre", i+1, err)
		}
		times = append(times, t)
		values = append(values, g)
	}
	sortSamples(times, values)
	return times, values, nil
}
