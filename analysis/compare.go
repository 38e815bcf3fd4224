package analysis

import (
	"fmt"
	"math"

	"glyco/defs"
)

// TestResult is the outcome of one hypothesis test.
type TestResult struct {
	P           float64 `yaml:"p"`
	Significant bool    `yaml:"significant"`
}

// CompareVariability holds one test per variability metric.
type CompareVariability struct {
	MeanGlucose    TestResult `yaml:"meanGlucose"`
	MedianGlucose  TestResult `yaml:"medianGlucose"`
	StdGlucose     TestResult `yaml:"stdGlucose"`
	CVGlucose      TestResult `yaml:"cvGlucose"`
	RangeGlucose   TestResult `yaml:"rangeGlucose"`
	IQRGlucose     TestResult `yaml:"iqrGlucose"`
	AUCGlucose     TestResult `yaml:"aucGlucose"`
	GMI            TestResult `yaml:"gmi"`
	COGI           TestResult `yaml:"cogi"`
	CONGA          TestResult `yaml:"conga"`
	JIndex         TestResult `yaml:"jIndex"`
	MageIndex      TestResult `yaml:"mageIndex"`
	MagePlusIndex  TestResult `yaml:"magePlusIndex"`
	MageMinusIndex TestResult `yaml:"mageMinusIndex"`
	EFIndex        TestResult `yaml:"efIndex"`
	MODD           TestResult `yaml:"modd"`
	SDDMIndex      TestResult `yaml:"sddmIndex"`
	SDWIndex       TestResult `yaml:"sdwIndex"`
	StdGlucoseROC  TestResult `yaml:"stdGlucoseRoc"`
}

// CompareTimeInRange holds one test per time-in-range metric.
type CompareTimeInRange struct {
	TimeInTarget          TestResult `yaml:"timeInTarget"`
	TimeInTightTarget     TestResult `yaml:"timeInTightTarget"`
	TimeInHypoglycemia    TestResult `yaml:"timeInHypoglycemia"`
	TimeInL1Hypoglycemia  TestResult `yaml:"timeInL1Hypoglycemia"`
	TimeInL2Hypoglycemia  TestResult `yaml:"timeInL2Hypoglycemia"`
	TimeInHyperglycemia   TestResult `yaml:"timeInHyperglycemia"`
	TimeInL1Hyperglycemia TestResult `yaml:"timeInL1Hyperglycemia"`
	TimeInL2Hyperglycemia TestResult `yaml:"timeInL2Hyperglycemia"`
}

// CompareRisk holds one test per risk metric.
type CompareRisk struct {
	ADRR TestResult `yaml:"adrr"`
	LBGI TestResult `yaml:"lbgi"`
	HBGI TestResult `yaml:"hbgi"`
	BGRI TestResult `yaml:"bgri"`
	GRI  TestResult `yaml:"gri"`
}

// CompareTransform holds one test per transform metric.
type CompareTransform struct {
	GradeScore      TestResult `yaml:"gradeScore"`
	GradeHypoScore  TestResult `yaml:"gradeHypoScore"`
	GradeHyperScore TestResult `yaml:"gradeHyperScore"`
	GradeEuScore    TestResult `yaml:"gradeEuScore"`
	HypoIndex       TestResult `yaml:"hypoIndex"`
	HyperIndex      TestResult `yaml:"hyperIndex"`
	IGC             TestResult `yaml:"igc"`
	MRIndex         TestResult `yaml:"mrIndex"`
}

// CompareQuality holds one test per data quality metric.
type CompareQuality struct {
	NumberDaysOfObservation  TestResult `yaml:"numberDaysOfObservation"`
	MissingGlucosePercentage TestResult `yaml:"missingGlucosePercentage"`
}

// CompareStats groups the per-metric test outcomes.
type CompareStats struct {
	Variability CompareVariability `yaml:"variability"`
	TimeInRange CompareTimeInRange `yaml:"timeInRange"`
	Risk        CompareRisk        `yaml:"risk"`
	Transform   CompareTransform   `yaml:"transform"`
	Quality     CompareQuality     `yaml:"quality"`
}

// CompareResults is the full outcome of a two-arm comparison.
type CompareResults struct {
	Arm1  ArmResults   `yaml:"arm1"`
	Arm2  ArmResults   `yaml:"arm2"`
	Stats CompareStats `yaml:"stats"`
}

// CompareTwoArms analyzes both arms and tests every metric for a difference
// between them. A paired design uses a paired t-test on the per-subject
// differences and requires equally sized arms; an unpaired one uses Welch's
// t-test. Significance is judged against alpha.
func (a *Analyzer) CompareTwoArms(arm1, arm2 []defs.Series, paired bool, alpha float64) (CompareResults, error) {
	if paired && len(arm1) != len(arm2) {
		return CompareResults{}, fmt.Errorf("paired comparison needs equally sized arms, got %d and %d", len(arm1), len(arm2))
	}
	r1 := a.AnalyzeOneArm(arm1)
	r2 := a.AnalyzeOneArm(arm2)

	c := func(get func(ArmResults) MetricSummary) TestResult {
		x := get(r1).Values
		y := get(r2).Values
		var p float64
		if paired {
			p = pairedTTest(x, y)
		} else {
			p = welchTTest(x, y)
		}
		return TestResult{P: p, Significant: !math.IsNaN(p) && p < alpha}
	}

	stats := CompareStats{
		Variability: CompareVariability{
			MeanGlucose:    c(func(r ArmResults) MetricSummary { return r.Variability.MeanGlucose }),
			MedianGlucose:  c(func(r ArmResults) MetricSummary { return r.Variability.MedianGlucose }),
			StdGlucose:     c(func(r ArmResults) MetricSummary { return r.Variability.StdGlucose }),
			CVGlucose:      c(func(r ArmResults) MetricSummary { return r.Variability.CVGlucose }),
			RangeGlucose:   c(func(r ArmResults) MetricSummary { return r.Variability.RangeGlucose }),
			IQRGlucose:     c(func(r ArmResults) MetricSummary { return r.Variability.IQRGlucose }),
			AUCGlucose:     c(func(r ArmResults) MetricSummary { return r.Variability.AUCGlucose }),
			GMI:            c(func(r ArmResults) MetricSummary { return r.Variability.GMI }),
			COGI:           c(func(r ArmResults) MetricSummary { return r.Variability.COGI }),
			CONGA:          c(func(r ArmResults) MetricSummary { return r.Variability.CONGA }),
			JIndex:         c(func(r ArmResults) MetricSummary { return r.Variability.JIndex }),
			MageIndex:      c(func(r ArmResults) MetricSummary { return r.Variability.MageIndex }),
			MagePlusIndex:  c(func(r ArmResults) MetricSummary { return r.Variability.MagePlusIndex }),
			MageMinusIndex: c(func(r ArmResults) MetricSummary { return r.Variability.MageMinusIndex }),
			EFIndex:        c(func(r ArmResults) MetricSummary { return r.Variability.EFIndex }),
			MODD:           c(func(r ArmResults) MetricSummary { return r.Variability.MODD }),
			SDDMIndex:      c(func(r ArmResults) MetricSummary { return r.Variability.SDDMIndex }),
			SDWIndex:       c(func(r ArmResults) MetricSummary { return r.Variability.SDWIndex }),
			StdGlucoseROC:  c(func(r ArmResults) MetricSummary { return r.Variability.StdGlucoseROC }),
		},
		TimeInRange: CompareTimeInRange{
			TimeInTarget:          c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInTarget }),
			TimeInTightTarget:     c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInTightTarget }),
			TimeInHypoglycemia:    c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInHypoglycemia }),
			TimeInL1Hypoglycemia:  c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInL1Hypoglycemia }),
			TimeInL2Hypoglycemia:  c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInL2Hypoglycemia }),
			TimeInHyperglycemia:   c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInHyperglycemia }),
			TimeInL1Hyperglycemia: c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInL1Hyperglycemia }),
			TimeInL2Hyperglycemia: c(func(r ArmResults) MetricSummary { return r.TimeInRange.TimeInL2Hyperglycemia }),
		},
		Risk: CompareRisk{
			ADRR: c(func(r ArmResults) MetricSummary { return r.Risk.ADRR }),
			LBGI: c(func(r ArmResults) MetricSummary { return r.Risk.LBGI }),
			HBGI: c(func(r ArmResults) MetricSummary { return r.Risk.HBGI }),
			BGRI: c(func(r ArmResults) MetricSummary { return r.Risk.BGRI }),
			GRI:  c(func(r ArmResults) MetricSummary { return r.Risk.GRI }),
		},
		Transform: CompareTransform{
			GradeScore:      c(func(r ArmResults) MetricSummary { return r.Transform.GradeScore }),
			GradeHypoScore:  c(func(r ArmResults) MetricSummary { return r.Transform.GradeHypoScore }),
			GradeHyperScore: c(func(r ArmResults) MetricSummary { return r.Transform.GradeHyperScore }),
			GradeEuScore:    c(func(r ArmResults) MetricSummary { return r.Transform.GradeEuScore }),
			HypoIndex:       c(func(r ArmResults) MetricSummary { return r.Transform.HypoIndex }),
			HyperIndex:      c(func(r ArmResults) MetricSummary { return r.Transform.HyperIndex }),
			IGC:             c(func(r ArmResults) MetricSummary { return r.Transform.IGC }),
			MRIndex:         c(func(r ArmResults) MetricSummary { return r.Transform.MRIndex }),
		},
		Quality: CompareQuality{
			NumberDaysOfObservation:  c(func(r ArmResults) MetricSummary { return r.Quality.NumberDaysOfObservation }),
			MissingGlucosePercentage: c(func(r ArmResults) MetricSummary { return r.Quality.MissingGlucosePercentage }),
		},
	}

	return CompareResults{Arm1: r1, Arm2: r2, Stats: stats}, nil
}
