package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"glyco/analysis"
	"glyco/defs"
	"glyco/device"
	"glyco/processing"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "f", "config.yaml", "config file")
	flag.Parse()
}

func main() {
	logger, _ := zap.NewDevelopment()
	config := defs.Config{Logger: logger}

	file, err := os.ReadFile(configFile)
	if err != nil {
		panic(err)
	}

	if err = yaml.Unmarshal(file, &config); err != nil {
		panic(err)
	}

	logger.Debug("loaded config file", zap.String("file", configFile))

	times, values, err := readDevice(config)
	if err != nil {
		panic(err)
	}

	step := config.SampleMinutes
	if step <= 0 {
		step = defs.DefaultSampleMinutes
	}
	series, err := processing.Retime(times, values, step)
	if err != nil {
		panic(err)
	}
	if config.MaxGapMinutes > 0 {
		series = processing.Impute(series, config.MaxGapMinutes)
	}

	analyzer, err := analysis.New(defs.Target(config.Target), logger)
	if err != nil {
		panic(err)
	}

	results := analyzer.AnalyzeGlucoseProfile(series)

	out, err := yaml.Marshal(results)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(out))
}

func readDevice(config defs.Config) ([]time.Time, []float64, error) {
	switch config.Device {
	case "dexcom":
		return device.ReadDexcomFile(config.File)
	case "eversense":
		return device.ReadEversenseFile(config.File)
	case "libre":
		return device.ReadLibreFile(config.File)
	}
	return nil, nil, fmt.Errorf("unknown device %q", config.Device)
}
