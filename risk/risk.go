// Package risk computes hypo/hyperglycemic risk scores built on the
// Kovatchev blood glucose risk space.
package risk

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/montanaflynn/stats"

	"glyco/defs"
	"glyco/ranges"
)

// Kovatchev risk space constants.
const (
	riskAlpha     = 1.084
	riskBeta      = 5.381
	riskGamma     = 1.509
	riskThreshold = 112.5
)

// riskPair maps one glucose value into the symmetrized risk space and splits
// it into its low and high components. Exactly at the threshold both sides
// carry the (zero-adjacent) risk, matching the reference risk space.
func riskPair(g float64) (low, high float64) {
	f := riskGamma * (math.Pow(math.Log(g), riskAlpha) - riskBeta)
	r := 10 * f * f
	low, high = r, r
	if g > riskThreshold {
		low = 0
	}
	if g < riskThreshold {
		high = 0
	}
	return low, high
}

// LBGI returns the low blood glucose index.
func LBGI(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range values {
		low, _ := riskPair(g)
		sum += low
	}
	return sum / float64(len(values))
}

// HBGI returns the high blood glucose index.
func HBGI(s defs.Series) float64 {
	values := s.NonMissing()
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, g := range values {
		_, high := riskPair(g)
		sum += high
	}
	return sum / float64(len(values))
}

// BGRI returns the blood glucose risk index, the sum of LBGI and HBGI.
func BGRI(s defs.Series) float64 {
	return LBGI(s) + HBGI(s)
}

// ADRR returns the average daily risk range: the worst low plus the worst
// high risk of each calendar day, averaged across the days with data.
func ADRR(s defs.Series) float64 {
	var dayRisks []float64
	for _, day := range s.Days() {
		maxLow, maxHigh := math.NaN(), math.NaN()
		for _, g := range day.NonMissing() {
			low, high := riskPair(g)
			if math.IsNaN(maxLow) || low > maxLow {
				maxLow = low
			}
			if math.IsNaN(maxHigh) || high > maxHigh {
				maxHigh = high
			}
		}
		if !math.IsNaN(maxLow) {
			dayRisks = append(dayRisks, maxLow+maxHigh)
		}
	}
	if len(dayRisks) == 0 {
		return math.NaN()
	}
	m, _ := stats.Mean(dayRisks)
	return m
}

// GRI returns the glycemia risk index, a weighted composite of the severe
// and moderate time-below and time-above ranges, capped at 100.
func GRI(s defs.Series, p defs.Profile) float64 {
	gri := 3.0*ranges.TimeInL2Hypoglycemia(s, p) +
		2.4*ranges.TimeInL1Hypoglycemia(s, p) +
		1.6*ranges.TimeInL2Hyperglycemia(s, p) +
		0.8*ranges.TimeInL1Hyperglycemia(s, p)
	return math.Min(gri, 100)
}

// DynamicRiskOptions tunes the rate-of-change amplification of the dynamic
// risk trace.
type DynamicRiskOptions struct {
	AmplificationFunction string  // "tanh" or "exp"
	MaximumAmplification  float64 // > 1
	AmplificationRapidity float64 // > 0
	MaximumDamping        float64 // > 0
}

func DefaultDynamicRiskOptions() DynamicRiskOptions {
	return DynamicRiskOptions{
		AmplificationFunction: "tanh",
		MaximumAmplification:  2.5,
		AmplificationRapidity: 2,
		MaximumDamping:        0.6,
	}
}

// DynamicRisk returns the per-sample dynamic risk trace: the static risk of
// each sample amplified or damped by the glucose rate of change.
func DynamicRisk(s defs.Series, o DynamicRiskOptions) ([]float64, error) {
	if o.AmplificationFunction != "tanh" && o.AmplificationFunction != "exp" {
		return nil, fmt.Errorf("unknown amplification function %q", o.AmplificationFunction)
	}
	if s.IsEmpty() {
		return nil, nil
	}

	delta := (o.MaximumAmplification - o.MaximumDamping) / 2
	drBeta := delta + o.MaximumDamping
	drGamma := cmplx.Atanh(complex((1-drBeta)/delta, 0))

	period := s.SampleMinutes()
	out := make([]float64, s.Len())
	for i := range out {
		g := s.Values[i]
		roc := 0.0
		if i > 0 && period > 0 {
			roc = (s.Values[i] - s.Values[i-1]) / period
		}

		f := riskGamma * (math.Pow(math.Log(g), riskAlpha) - riskBeta)
		static := 10 * f * f
		if f < 0 {
			static = -static
		}

		logG := math.Log(g)
		drdg := 10 * riskGamma * riskGamma * 2 * riskAlpha *
			(math.Pow(logG, 2*riskAlpha-1) - riskBeta*math.Pow(logG, riskAlpha-1)) / g

		var modulation float64
		if o.AmplificationFunction == "tanh" {
			modulation = real(complex(delta, 0)*cmplx.Tanh(complex(o.AmplificationRapidity*drdg*roc, 0)+drGamma)) + drBeta
		} else {
			modulation = math.Exp(o.MaximumAmplification * drdg * roc)
		}
		out[i] = static * modulation
	}
	return out, nil
}
