package inspection

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"glyco/defs"
)

type QualityTestSuite struct {
	suite.Suite
}

func TestQualityTestSuite(t *testing.T) {
	suite.Run(t, new(QualityTestSuite))
}

func (suite *QualityTestSuite) TestNumberDaysOfObservation() {
	s := newSeries(suite.T(), withRuns(85, 120, nil), 5*time.Minute)
	assert.InDelta(suite.T(), 0.2917, NumberDaysOfObservation(s), 1e-4)

	full := newSeries(suite.T(), make([]float64, 289), 5*time.Minute)
	assert.InDelta(suite.T(), 1.0, NumberDaysOfObservation(full), 1e-9)
}

func (suite *QualityTestSuite) TestMissingGlucosePercentage() {
	s := newSeries(suite.T(), missingAt(10, 3), 5*time.Minute)
	assert.Equal(suite.T(), 10.0, MissingGlucosePercentage(s))

	s = newSeries(suite.T(), missingAt(10), 5*time.Minute)
	assert.Equal(suite.T(), 0.0, MissingGlucosePercentage(s))
}

func (suite *QualityTestSuite) TestEmptySeries() {
	assert.True(suite.T(), math.IsNaN(NumberDaysOfObservation(defs.Series{})))
	assert.True(suite.T(), math.IsNaN(MissingGlucosePercentage(defs.Series{})))
}
