package defs

import "go.uber.org/zap"

// Default retiming step for CGM traces.
const DefaultSampleMinutes = 5

type Config struct {
	Device        string      `yaml:"device"`
	File          string      `yaml:"file"`
	Target        string      `yaml:"target"`
	SampleMinutes int         `yaml:"sampleMinutes"`
	MaxGapMinutes int         `yaml:"maxGapMinutes"`
	Logger        *zap.Logger `yaml:"-"`
}
