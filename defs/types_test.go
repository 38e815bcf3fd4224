package defs

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesTestSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func gridTimes(n int, step time.Duration) []time.Time {
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = base.Add(time.Duration(i) * step)
	}
	return times
}

func (suite *SeriesTestSuite) TestNewSeries() {
	times := gridTimes(4, 5*time.Minute)
	s, err := NewSeries(times, []float64{100, 110, math.NaN(), 130})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, s.Len())
	assert.Equal(suite.T(), 5.0, s.SampleMinutes())
}

func (suite *SeriesTestSuite) TestNewSeriesLengthMismatch() {
	_, err := NewSeries(gridTimes(3, 5*time.Minute), []float64{100, 110})
	assert.Error(suite.T(), err)
}

func (suite *SeriesTestSuite) TestNewSeriesNotIncreasing() {
	times := gridTimes(3, 5*time.Minute)
	times[2] = times[1]
	_, err := NewSeries(times, []float64{100, 110, 120})
	assert.Error(suite.T(), err)
}

func (suite *SeriesTestSuite) TestNewSeriesInhomogeneousGrid() {
	times := gridTimes(4, 5*time.Minute)
	times[3] = times[3].Add(time.Minute)
	_, err := NewSeries(times, []float64{100, 110, 120, 130})
	assert.Error(suite.T(), err)
}

func (suite *SeriesTestSuite) TestSpanDays() {
	s, err := NewSeries(gridTimes(13, 2*time.Hour), make([]float64, 13))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1.0, s.SpanDays())
}

func (suite *SeriesTestSuite) TestNonMissing() {
	s, err := NewSeries(gridTimes(4, 5*time.Minute), []float64{100, math.NaN(), 120, math.NaN()})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []float64{100, 120}, s.NonMissing())
}

func (suite *SeriesTestSuite) TestDaysSplit() {
	// Samples every 6 hours over two calendar days.
	s, err := NewSeries(gridTimes(8, 6*time.Hour), []float64{1, 2, 3, 4, 5, 6, 7, 8})
	assert.NoError(suite.T(), err)

	days := s.Days()
	assert.Len(suite.T(), days, 2)
	assert.Equal(suite.T(), []float64{1, 2, 3, 4}, days[0].Values)
	assert.Equal(suite.T(), []float64{5, 6, 7, 8}, days[1].Values)
}

func (suite *SeriesTestSuite) TestDaysEmpty() {
	var s Series
	assert.Nil(suite.T(), s.Days())
}

func (suite *SeriesTestSuite) TestTargetProfiles() {
	p, err := TargetDiabetes.Profile()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 70.0, p.Low)
	assert.Equal(suite.T(), 180.0, p.High)
	assert.Equal(suite.T(), 54.0, p.SevereLow)
	assert.Equal(suite.T(), 250.0, p.SevereHigh)

	p, err = TargetPregnancy.Profile()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 63.0, p.Low)
	assert.Equal(suite.T(), 140.0, p.High)

	_, err = Target("bogus").Profile()
	assert.Error(suite.T(), err)
}
