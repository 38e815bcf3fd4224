// Package analysis computes full glucose profile reports, aggregates them
// across study arms, and compares two arms metric by metric.
package analysis

import (
	"go.uber.org/zap"

	"glyco/defs"
	"glyco/inspection"
	"glyco/ranges"
	"glyco/risk"
	"glyco/transform"
	"glyco/variability"
)

// Analyzer computes every supported metric against one glycemic target.
type Analyzer struct {
	Target  defs.Target
	Profile defs.Profile
	Logger  *zap.Logger
}

// New returns an Analyzer for the given target. A nil logger is replaced
// with a no-op one.
func New(target defs.Target, logger *zap.Logger) (*Analyzer, error) {
	p, err := target.Profile()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		Target:  target,
		Profile: p,
		Logger:  logger,
	}, nil
}

// VariabilityResults holds the descriptive variability metrics, all in
// mg/dl (or derived units).
type VariabilityResults struct {
	MeanGlucose    float64 `yaml:"meanGlucose"`
	MedianGlucose  float64 `yaml:"medianGlucose"`
	StdGlucose     float64 `yaml:"stdGlucose"`
	CVGlucose      float64 `yaml:"cvGlucose"`
	RangeGlucose   float64 `yaml:"rangeGlucose"`
	IQRGlucose     float64 `yaml:"iqrGlucose"`
	AUCGlucose     float64 `yaml:"aucGlucose"`
	GMI            float64 `yaml:"gmi"`
	COGI           float64 `yaml:"cogi"`
	CONGA          float64 `yaml:"conga"`
	JIndex         float64 `yaml:"jIndex"`
	MageIndex      float64 `yaml:"mageIndex"`
	MagePlusIndex  float64 `yaml:"magePlusIndex"`
	MageMinusIndex float64 `yaml:"mageMinusIndex"`
	EFIndex        float64 `yaml:"efIndex"`
	MODD           float64 `yaml:"modd"`
	SDDMIndex      float64 `yaml:"sddmIndex"`
	SDWIndex       float64 `yaml:"sdwIndex"`
	StdGlucoseROC  float64 `yaml:"stdGlucoseRoc"`
}

// TimeInRangeResults holds the time-in-range percentages.
type TimeInRangeResults struct {
	TimeInTarget          float64 `yaml:"timeInTarget"`
	TimeInTightTarget     float64 `yaml:"timeInTightTarget"`
	TimeInHypoglycemia    float64 `yaml:"timeInHypoglycemia"`
	TimeInL1Hypoglycemia  float64 `yaml:"timeInL1Hypoglycemia"`
	TimeInL2Hypoglycemia  float64 `yaml:"timeInL2Hypoglycemia"`
	TimeInHyperglycemia   float64 `yaml:"timeInHyperglycemia"`
	TimeInL1Hyperglycemia float64 `yaml:"timeInL1Hyperglycemia"`
	TimeInL2Hyperglycemia float64 `yaml:"timeInL2Hyperglycemia"`
}

// RiskResults holds the risk-space metrics.
type RiskResults struct {
	ADRR float64 `yaml:"adrr"`
	LBGI float64 `yaml:"lbgi"`
	HBGI float64 `yaml:"hbgi"`
	BGRI float64 `yaml:"bgri"`
	GRI  float64 `yaml:"gri"`
}

// TransformResults holds the GRADE family and related transforms.
type TransformResults struct {
	GradeScore      float64 `yaml:"gradeScore"`
	GradeHypoScore  float64 `yaml:"gradeHypoScore"`
	GradeHyperScore float64 `yaml:"gradeHyperScore"`
	GradeEuScore    float64 `yaml:"gradeEuScore"`
	HypoIndex       float64 `yaml:"hypoIndex"`
	HyperIndex      float64 `yaml:"hyperIndex"`
	IGC             float64 `yaml:"igc"`
	MRIndex         float64 `yaml:"mrIndex"`
}

// QualityResults holds the data sufficiency metrics.
type QualityResults struct {
	NumberDaysOfObservation  float64 `yaml:"numberDaysOfObservation"`
	MissingGlucosePercentage float64 `yaml:"missingGlucosePercentage"`
}

// EventResults holds every detected episode family.
type EventResults struct {
	Hypoglycemic         inspection.LevelEvents  `yaml:"hypoglycemic"`
	Hyperglycemic        inspection.LevelEvents  `yaml:"hyperglycemic"`
	ExtendedHypoglycemic inspection.EventSummary `yaml:"extendedHypoglycemic"`
}

// ProfileResults is the complete report for one glucose trace.
type ProfileResults struct {
	Variability VariabilityResults `yaml:"variability"`
	TimeInRange TimeInRangeResults `yaml:"timeInRange"`
	Risk        RiskResults        `yaml:"risk"`
	Transform   TransformResults   `yaml:"transform"`
	Quality     QualityResults     `yaml:"quality"`
	Events      EventResults       `yaml:"events"`
}

// AnalyzeGlucoseProfile computes every metric for a single trace.
func (a *Analyzer) AnalyzeGlucoseProfile(s defs.Series) ProfileResults {
	a.Logger.Debug("analyzing glucose profile",
		zap.Int("samples", s.Len()),
		zap.String("target", string(a.Target)),
	)
	p := a.Profile
	return ProfileResults{
		Variability: VariabilityResults{
			MeanGlucose:    variability.MeanGlucose(s),
			MedianGlucose:  variability.MedianGlucose(s),
			StdGlucose:     variability.StdGlucose(s),
			CVGlucose:      variability.CVGlucose(s),
			RangeGlucose:   variability.RangeGlucose(s),
			IQRGlucose:     variability.IQRGlucose(s),
			AUCGlucose:     variability.AUCGlucose(s),
			GMI:            variability.GMI(s),
			COGI:           variability.COGI(s),
			CONGA:          variability.CONGA(s),
			JIndex:         variability.JIndex(s),
			MageIndex:      variability.MageIndex(s),
			MagePlusIndex:  variability.MagePlusIndex(s),
			MageMinusIndex: variability.MageMinusIndex(s),
			EFIndex:        variability.EFIndex(s),
			MODD:           variability.MODD(s),
			SDDMIndex:      variability.SDDMIndex(s),
			SDWIndex:       variability.SDWIndex(s),
			StdGlucoseROC:  variability.StdGlucoseROC(s),
		},
		TimeInRange: TimeInRangeResults{
			TimeInTarget:          ranges.TimeInTarget(s, p),
			TimeInTightTarget:     ranges.TimeInTightTarget(s, p),
			TimeInHypoglycemia:    ranges.TimeInHypoglycemia(s, p),
			TimeInL1Hypoglycemia:  ranges.TimeInL1Hypoglycemia(s, p),
			TimeInL2Hypoglycemia:  ranges.TimeInL2Hypoglycemia(s, p),
			TimeInHyperglycemia:   ranges.TimeInHyperglycemia(s, p),
			TimeInL1Hyperglycemia: ranges.TimeInL1Hyperglycemia(s, p),
			TimeInL2Hyperglycemia: ranges.TimeInL2Hyperglycemia(s, p),
		},
		Risk: RiskResults{
			ADRR: risk.ADRR(s),
			LBGI: risk.LBGI(s),
			HBGI: risk.HBGI(s),
			BGRI: risk.BGRI(s),
			GRI:  risk.GRI(s, p),
		},
		Transform: TransformResults{
			GradeScore:      transform.GradeScore(s),
			GradeHypoScore:  transform.GradeHypoScore(s),
			GradeHyperScore: transform.GradeHyperScore(s),
			GradeEuScore:    transform.GradeEuScore(s),
			HypoIndex:       transform.HypoIndex(s),
			HyperIndex:      transform.HyperIndex(s),
			IGC:             transform.IGC(s),
			MRIndex:         transform.MRIndex(s),
		},
		Quality: QualityResults{
			NumberDaysOfObservation:  inspection.NumberDaysOfObservation(s),
			MissingGlucosePercentage: inspection.MissingGlucosePercentage(s),
		},
		Events: EventResults{
			Hypoglycemic:         inspection.FindHypoglycemicEventsByLevel(s, p),
			Hyperglycemic:        inspection.FindHyperglycemicEventsByLevel(s, p),
			ExtendedHypoglycemic: inspection.FindExtendedHypoglycemicEvents(s, p.Low),
		},
	}
}
