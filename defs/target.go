package defs

import "fmt"

// Target selects a named set of clinical glucose thresholds.
type Target string

const (
	TargetDiabetes  Target = "diabetes"
	TargetPregnancy Target = "pregnancy"
)

// Profile is the set of mg/dl cutoffs selected by a Target. Low and High
// bound the target band and double as the hypo/hyperglycemia thresholds;
// SevereLow and SevereHigh mark level 2 severity.
type Profile struct {
	Low        float64 `yaml:"low"`
	High       float64 `yaml:"high"`
	TightLow   float64 `yaml:"tightLow"`
	TightHigh  float64 `yaml:"tightHigh"`
	SevereLow  float64 `yaml:"severeLow"`
	SevereHigh float64 `yaml:"severeHigh"`
}

// Profile resolves the target name to its thresholds. An unrecognized name
// is a configuration error.
func (t Target) Profile() (Profile, error) {
	switch t {
	case TargetDiabetes:
		return Profile{Low: 70, High: 180, TightLow: 70, TightHigh: 140, SevereLow: 54, SevereHigh: 250}, nil
	case TargetPregnancy:
		return Profile{Low: 63, High: 140, TightLow: 70, TightHigh: 140, SevereLow: 54, SevereHigh: 250}, nil
	}
	return Profile{}, fmt.Errorf("unknown glycemic target %q", string(t))
}
