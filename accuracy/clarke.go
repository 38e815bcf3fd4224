package accuracy

import (
	"math"

	"glyco/defs"
)

// ClarkeResult holds the share of paired samples falling in each zone of the
// Clarke error grid, in percent. Zone A is clinically accurate, zone E is
// erroneous treatment.
type ClarkeResult struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
	D float64 `yaml:"d"`
	E float64 `yaml:"e"`
}

// Clarke classifies each reference/estimate pair into a Clarke error grid
// zone and returns the zone occupancies. All zones are NaN when no pairs
// exist.
func Clarke(ref, est defs.Series) (ClarkeResult, error) {
	y, yp, err := pairedValues(ref, est)
	if err != nil {
		return ClarkeResult{}, err
	}
	if len(y) == 0 {
		nan := math.NaN()
		return ClarkeResult{A: nan, B: nan, C: nan, D: nan, E: nan}, nil
	}

	var a, b, c, d, e int
	for i := range y {
		switch {
		case (yp[i] <= 70 && y[i] <= 70) || (yp[i] >= 0.8*y[i] && yp[i] <= 1.2*y[i]):
			a++
		case (y[i] >= 180 && yp[i] <= 70) || (y[i] <= 70 && yp[i] >= 180):
			e++
		case (y[i] >= 70 && y[i] <= 290 && yp[i] >= y[i]+110) ||
			(y[i] >= 130 && y[i] <= 180 && yp[i] <= 7.0/5.0*y[i]-182):
			c++
		case (y[i] >= 240 && yp[i] >= 70 && yp[i] <= 180) ||
			(y[i] <= 175.0/3.0 && yp[i] >= 70 && yp[i] <= 180) ||
			(y[i] >= 175.0/3.0 && y[i] <= 70 && yp[i] >= 6.0/5.0*y[i]):
			d++
		default:
			b++
		}
	}

	n := float64(len(y))
	return ClarkeResult{
		A: 100 * float64(a) / n,
		B: 100 * float64(b) / n,
		C: 100 * float64(c) / n,
		D: 100 * float64(d) / n,
		E: 100 * float64(e) / n,
	}, nil
}
