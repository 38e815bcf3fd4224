package analysis

import (
	"math"

	"github.com/montanaflynn/stats"

	"glyco/defs"
)

// MetricSummary aggregates one metric over the subjects of an arm. Values
// keeps the per-subject results in input order; the summary statistics skip
// subjects whose metric is undefined.
type MetricSummary struct {
	Values []float64 `yaml:"values"`
	Mean   float64   `yaml:"mean"`
	Std    float64   `yaml:"std"`
	Median float64   `yaml:"median"`
	P5     float64   `yaml:"p5"`
	P25    float64   `yaml:"p25"`
	P75    float64   `yaml:"p75"`
	P95    float64   `yaml:"p95"`
}

func newMetricSummary(values []float64) MetricSummary {
	m := MetricSummary{Values: values}
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		m.Mean = math.NaN()
		m.Std = math.NaN()
		m.Median = math.NaN()
		m.P5 = math.NaN()
		m.P25 = math.NaN()
		m.P75 = math.NaN()
		m.P95 = math.NaN()
		return m
	}
	m.Mean, _ = stats.Mean(present)
	m.Median, _ = stats.Median(present)
	if std, err := stats.StandardDeviationSample(present); err == nil {
		m.Std = std
	} else {
		m.Std = math.NaN()
	}
	m.P5 = percentileOr(present, 5)
	m.P25 = percentileOr(present, 25)
	m.P75 = percentileOr(present, 75)
	m.P95 = percentileOr(present, 95)
	return m
}

func percentileOr(values []float64, p float64) float64 {
	v, err := stats.Percentile(values, p)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ArmVariability mirrors VariabilityResults with one summary per metric.
type ArmVariability struct {
	MeanGlucose    MetricSummary `yaml:"meanGlucose"`
	MedianGlucose  MetricSummary `yaml:"medianGlucose"`
	StdGlucose     MetricSummary `yaml:"stdGlucose"`
	CVGlucose      MetricSummary `yaml:"cvGlucose"`
	RangeGlucose   MetricSummary `yaml:"rangeGlucose"`
	IQRGlucose     MetricSummary `yaml:"iqrGlucose"`
	AUCGlucose     MetricSummary `yaml:"aucGlucose"`
	GMI            MetricSummary `yaml:"gmi"`
	COGI           MetricSummary `yaml:"cogi"`
	CONGA          MetricSummary `yaml:"conga"`
	JIndex         MetricSummary `yaml:"jIndex"`
	MageIndex      MetricSummary `yaml:"mageIndex"`
	MagePlusIndex  MetricSummary `yaml:"magePlusIndex"`
	MageMinusIndex MetricSummary `yaml:"mageMinusIndex"`
	EFIndex        MetricSummary `yaml:"efIndex"`
	MODD           MetricSummary `yaml:"modd"`
	SDDMIndex      MetricSummary `yaml:"sddmIndex"`
	SDWIndex       MetricSummary `yaml:"sdwIndex"`
	StdGlucoseROC  MetricSummary `yaml:"stdGlucoseRoc"`
}

// ArmTimeInRange mirrors TimeInRangeResults with one summary per metric.
type ArmTimeInRange struct {
	TimeInTarget          MetricSummary `yaml:"timeInTarget"`
	TimeInTightTarget     MetricSummary `yaml:"timeInTightTarget"`
	TimeInHypoglycemia    MetricSummary `yaml:"timeInHypoglycemia"`
	TimeInL1Hypoglycemia  MetricSummary `yaml:"timeInL1Hypoglycemia"`
	TimeInL2Hypoglycemia  MetricSummary `yaml:"timeInL2Hypoglycemia"`
	TimeInHyperglycemia   MetricSummary `yaml:"timeInHyperglycemia"`
	TimeInL1Hyperglycemia MetricSummary `yaml:"timeInL1Hyperglycemia"`
	TimeInL2Hyperglycemia MetricSummary `yaml:"timeInL2Hyperglycemia"`
}

// ArmRisk mirrors RiskResults with one summary per metric.
type ArmRisk struct {
	ADRR MetricSummary `yaml:"adrr"`
	LBGI MetricSummary `yaml:"lbgi"`
	HBGI MetricSummary `yaml:"hbgi"`
	BGRI MetricSummary `yaml:"bgri"`
	GRI  MetricSummary `yaml:"gri"`
}

// ArmTransform mirrors TransformResults with one summary per metric.
type ArmTransform struct {
	GradeScore      MetricSummary `yaml:"gradeScore"`
	GradeHypoScore  MetricSummary `yaml:"gradeHypoScore"`
	GradeHyperScore MetricSummary `yaml:"gradeHyperScore"`
	GradeEuScore    MetricSummary `yaml:"gradeEuScore"`
	HypoIndex       MetricSummary `yaml:"hypoIndex"`
	HyperIndex      MetricSummary `yaml:"hyperIndex"`
	IGC             MetricSummary `yaml:"igc"`
	MRIndex         MetricSummary `yaml:"mrIndex"`
}

// ArmQuality mirrors QualityResults with one summary per metric.
type ArmQuality struct {
	NumberDaysOfObservation  MetricSummary `yaml:"numberDaysOfObservation"`
	MissingGlucosePercentage MetricSummary `yaml:"missingGlucosePercentage"`
}

// ArmResults aggregates per-subject reports over one study arm.
type ArmResults struct {
	Profiles    []ProfileResults `yaml:"profiles"`
	Variability ArmVariability   `yaml:"variability"`
	TimeInRange ArmTimeInRange   `yaml:"timeInRange"`
	Risk        ArmRisk          `yaml:"risk"`
	Transform   ArmTransform     `yaml:"transform"`
	Quality     ArmQuality       `yaml:"quality"`
}

// AnalyzeOneArm runs the full profile analysis on every subject of an arm
// and summarizes each metric across subjects.
func (a *Analyzer) AnalyzeOneArm(arm []defs.Series) ArmResults {
	profiles := make([]ProfileResults, len(arm))
	for i, s := range arm {
		profiles[i] = a.AnalyzeGlucoseProfile(s)
	}
	return buildArmResults(profiles)
}

func buildArmResults(profiles []ProfileResults) ArmResults {
	col := func(get func(ProfileResults) float64) MetricSummary {
		values := make([]float64, len(profiles))
		for i, p := range profiles {
			values[i] = get(p)
		}
		return newMetricSummary(values)
	}
	return ArmResults{
		Profiles: profiles,
		Variability: ArmVariability{
			MeanGlucose:    col(func(p ProfileResults) float64 { return p.Variability.MeanGlucose }),
			MedianGlucose:  col(func(p ProfileResults) float64 { return p.Variability.MedianGlucose }),
			StdGlucose:     col(func(p ProfileResults) float64 { return p.Variability.StdGlucose }),
			CVGlucose:      col(func(p ProfileResults) float64 { return p.Variability.CVGlucose }),
			RangeGlucose:   col(func(p ProfileResults) float64 { return p.Variability.RangeGlucose }),
			IQRGlucose:     col(func(p ProfileResults) float64 { return p.Variability.IQRGlucose }),
			AUCGlucose:     col(func(p ProfileResults) float64 { return p.Variability.AUCGlucose }),
			GMI:            col(func(p ProfileResults) float64 { return p.Variability.GMI }),
			COGI:           col(func(p ProfileResults) float64 { return p.Variability.COGI }),
			CONGA:          col(func(p ProfileResults) float64 { return p.Variability.CONGA }),
			JIndex:         col(func(p ProfileResults) float64 { return p.Variability.JIndex }),
			MageIndex:      col(func(p ProfileResults) float64 { return p.Variability.MageIndex }),
			MagePlusIndex:  col(func(p ProfileResults) float64 { return p.Variability.MagePlusIndex }),
			MageMinusIndex: col(func(p ProfileResults) float64 { return p.Variability.MageMinusIndex }),
			EFIndex:        col(func(p ProfileResults) float64 { return p.Variability.EFIndex }),
			MODD:           col(func(p ProfileResults) float64 { return p.Variability.MODD }),
			SDDMIndex:      col(func(p ProfileResults) float64 { return p.Variability.SDDMIndex }),
			SDWIndex:       col(func(p ProfileResults) float64 { return p.Variability.SDWIndex }),
			StdGlucoseROC:  col(func(p ProfileResults) float64 { return p.Variability.StdGlucoseROC }),
		},
		TimeInRange: ArmTimeInRange{
			TimeInTarget:          col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInTarget }),
			TimeInTightTarget:     col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInTightTarget }),
			TimeInHypoglycemia:    col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInHypoglycemia }),
			TimeInL1Hypoglycemia:  col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInL1Hypoglycemia }),
			TimeInL2Hypoglycemia:  col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInL2Hypoglycemia }),
			TimeInHyperglycemia:   col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInHyperglycemia }),
			TimeInL1Hyperglycemia: col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInL1Hyperglycemia }),
			TimeInL2Hyperglycemia: col(func(p ProfileResults) float64 { return p.TimeInRange.TimeInL2Hyperglycemia }),
		},
		Risk: ArmRisk{
			ADRR: col(func(p ProfileResults) float64 { return p.Risk.ADRR }),
			LBGI: col(func(p ProfileResults) float64 { return p.Risk.LBGI }),
			HBGI: col(func(p ProfileResults) float64 { return p.Risk.HBGI }),
			BGRI: col(func(p ProfileResults) float64 { return p.Risk.BGRI }),
			GRI:  col(func(p ProfileResults) float64 { return p.Risk.GRI }),
		},
		Transform: ArmTransform{
			GradeScore:      col(func(p ProfileResults) float64 { return p.Transform.GradeScore }),
			GradeHypoScore:  col(func(p ProfileResults) float64 { return p.Transform.GradeHypoScore }),
			GradeHyperScore: col(func(p ProfileResults) float64 { return p.Transform.GradeHyperScore }),
			GradeEuScore:    col(func(p ProfileResults) float64 { return p.Transform.GradeEuScore }),
			HypoIndex:       col(func(p ProfileResults) float64 { return p.Transform.HypoIndex }),
			HyperIndex:      col(func(p ProfileResults) float64 { return p.Transform.HyperIndex }),
			IGC:             col(func(p ProfileResults) float64 { return p.Transform.IGC }),
			MRIndex:         col(func(p ProfileResults) float64 { return p.Transform.MRIndex }),
		},
		Quality: ArmQuality{
			NumberDaysOfObservation:  col(func(p ProfileResults) float64 { return p.Quality.NumberDaysOfObservation }),
			MissingGlucosePercentage: col(func(p ProfileResults) float64 { return p.Quality.MissingGlucosePercentage }),
		},
	}
}
