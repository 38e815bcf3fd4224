// Package accuracy scores an inferred or predicted glucose trace against a
// reference trace on the same time grid. Samples missing in either trace are
// excluded pairwise; a metric with no usable pairs is NaN.
package accuracy

import (
	"fmt"
	"math"

	"glyco/defs"
)

// pairedValues lines the two traces up and returns the values present in
// both. The traces must share length and timestamps.
func pairedValues(ref, est defs.Series) (y, yp []float64, err error) {
	if ref.Len() != est.Len() {
		return nil, nil, fmt.Errorf("traces not comparable: %d samples vs %d", ref.Len(), est.Len())
	}
	for i := range ref.Times {
		if !ref.Times[i].Equal(est.Times[i]) {
			return nil, nil, fmt.Errorf("traces not comparable: timestamps differ at index %d", i)
		}
	}
	for i, v := range ref.Values {
		if math.IsNaN(v) || math.IsNaN(est.Values[i]) {
			continue
		}
		y = append(y, v)
		yp = append(yp, est.Values[i])
	}
	return y, yp, nil
}

// RMSE returns the root mean squared error between the traces, in mg/dl.
func RMSE(ref, est defs.Series) (float64, error) {
	y, yp, err := pairedValues(ref, est)
	if err != nil {
		return 0, err
	}
	if len(y) == 0 {
		return math.NaN(), nil
	}
	sum := 0.0
	for i := range y {
		d := y[i] - yp[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(y))), nil
}

// MARD returns the mean absolute relative difference between the traces,
// in percent of the reference value.
func MARD(ref, est defs.Series) (float64, error) {
	y, yp, err := pairedValues(ref, est)
	if err != nil {
		return 0, err
	}
	if len(y) == 0 {
		return math.NaN(), nil
	}
	sum := 0.0
	for i := range y {
		sum += math.Abs((y[i] - yp[i]) / y[i])
	}
	return 100 * sum / float64(len(y)), nil
}

// COD returns the coefficient of determination between the traces, in
// percent: the share of the reference variance explained by the estimate.
func COD(ref, est defs.Series) (float64, error) {
	y, yp, err := pairedValues(ref, est)
	if err != nil {
		return 0, err
	}
	if len(y) == 0 {
		return math.NaN(), nil
	}
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var residual, total float64
	for i := range y {
		d := y[i] - yp[i]
		residual += d * d
		m := y[i] - mean
		total += m * m
	}
	return 100 * (1 - residual/total), nil
}

// gRMSE cost surface parameters, Del Favero 2012.
const (
	grmseLowWeight  = 1.5
	grmseHighWeight = 1.0
	grmseLowBand    = 10.0
	grmseLowEdge    = 30.0
	grmseHighBand   = 20.0
	grmseHighEdge   = 100.0
	grmseLowPivot   = 80.0
	grmseHighPivot  = 250.0
)

// c2Sigmoid is the twice-differentiable polynomial step used by the gRMSE
// cost surface: 0 below the transition band of width d around a, 1 above it.
func c2Sigmoid(x, a, d float64, geq bool) float64 {
	var xi float64
	if geq {
		xi = 2 / d * (x - a - d/2)
	} else {
		xi = 2 / d * (x - a + d/2)
	}
	switch {
	case xi <= -1:
		return 0
	case xi >= 1:
		return 1
	case xi <= 0:
		return 0.5 * (-math.Pow(xi, 4) - 2*math.Pow(xi, 3) + 2*xi + 1)
	default:
		return 0.5 * (math.Pow(xi, 4) - 2*math.Pow(xi, 3) + 2*xi + 1)
	}
}

// GRMSE returns the glucose-specific root mean squared error: the squared
// error of each pair weighted by a clinical cost that penalizes
// underestimation at low glucose and overestimation at high glucose.
func GRMSE(ref, est defs.Series) (float64, error) {
	y, yp, err := pairedValues(ref, est)
	if err != nil {
		return 0, err
	}
	if len(y) == 0 {
		return math.NaN(), nil
	}
	sum := 0.0
	for i := range y {
		termLow := grmseLowWeight *
			c2Sigmoid(y[i], yp[i], grmseLowBand, false) *
			c2Sigmoid(y[i], grmseLowPivot, grmseLowEdge, false)
		termHigh := grmseHighWeight *
			c2Sigmoid(y[i], yp[i], grmseHighBand, true) *
			c2Sigmoid(y[i], grmseHighPivot, grmseHighEdge, true)
		d := y[i] - yp[i]
		sum += d * d * (1 + termLow + termHigh)
	}
	return math.Sqrt(sum / float64(len(y))), nil
}

// TimeDelay returns the delay of a predicted trace against its reference, in
// minutes: the shift within the prediction horizon that minimizes the RMSE
// between the aligned traces, subtracted from the horizon. Ties go to the
// smallest shift. NaN when no pairs exist or the grid period is unknown.
func TimeDelay(ref, est defs.Series, horizonMinutes int) (float64, error) {
	y, yp, err := pairedValues(ref, est)
	if err != nil {
		return 0, err
	}
	period := ref.SampleMinutes()
	if len(y) == 0 || period == 0 {
		return math.NaN(), nil
	}

	steps := int(float64(horizonMinutes)/period) + 1
	bestStep, bestErr := 0, math.Inf(1)
	for k := 0; k < steps && k < len(y); k++ {
		sum := 0.0
		n := len(y) - k
		for i := 0; i < n; i++ {
			d := y[i] - yp[i+k]
			sum += d * d
		}
		if e := math.Sqrt(sum / float64(n)); e < bestErr {
			bestStep, bestErr = k, e
		}
	}
	return float64(horizonMinutes) - period*float64(bestStep), nil
}
