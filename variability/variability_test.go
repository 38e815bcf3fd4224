package variability

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"glyco/defs"
)

func newSeries(t *testing.T, values []float64, step time.Duration) defs.Series {
	t.Helper()
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(values))
	for i := range times {
		times[i] = base.Add(time.Duration(i) * step)
	}
	s, err := defs.NewSeries(times, values)
	assert.NoError(t, err)
	return s
}

type VariabilityTestSuite struct {
	suite.Suite
}

func TestVariabilityTestSuite(t *testing.T) {
	suite.Run(t, new(VariabilityTestSuite))
}

func (suite *VariabilityTestSuite) fixture() defs.Series {
	return newSeries(suite.T(), []float64{40, 50, 50, 80, 120, 120, 200, 200, 260, 260, math.NaN()}, 5*time.Minute)
}

func (suite *VariabilityTestSuite) TestDescriptives() {
	s := suite.fixture()

	assert.Equal(suite.T(), 138.0, MeanGlucose(s))
	assert.Equal(suite.T(), 120.0, MedianGlucose(s))
	assert.InDelta(suite.T(), 85.998, StdGlucose(s), 1e-2)
	assert.InDelta(suite.T(), 62.32, CVGlucose(s), 0.05)
	assert.Equal(suite.T(), 220.0, RangeGlucose(s))
	assert.Equal(suite.T(), 150.0, IQRGlucose(s))
}

func (suite *VariabilityTestSuite) TestAUC() {
	s := suite.fixture()
	assert.Equal(suite.T(), 6900.0, AUCGlucose(s))
	assert.Equal(suite.T(), 1900.0, AUCGlucoseOverBasal(s, 100))
}

func (suite *VariabilityTestSuite) TestGMI() {
	assert.InDelta(suite.T(), 6.611, GMI(suite.fixture()), 1e-3)
}

func (suite *VariabilityTestSuite) TestCOGI() {
	assert.InDelta(suite.T(), 18.68, COGI(suite.fixture()), 0.02)
}

func (suite *VariabilityTestSuite) TestJIndex() {
	assert.InDelta(suite.T(), 50.175, JIndex(suite.fixture()), 0.05)
}

func (suite *VariabilityTestSuite) TestCONGA() {
	s := twoHourly(suite.T(), []float64{100, 120, 140, 160, 100, 120, 140, 160})
	assert.InDelta(suite.T(), 41.312, CONGA(s), 1e-3)

	flat := twoHourly(suite.T(), []float64{100, 100, 100, 100, 100, 100, 100, 100})
	assert.Equal(suite.T(), 0.0, CONGA(flat))
}

// twoHourly builds a two-hourly series so a four-hour lag spans
// exactly two samples.
func twoHourly(t *testing.T, values []float64) defs.Series {
	return newSeries(t, values, 2*time.Hour)
}

func (suite *VariabilityTestSuite) dailyFixture() defs.Series {
	// Two calendar days at six-hour sampling, the second shifted up by 20.
	return newSeries(suite.T(), []float64{100, 110, 120, 130, 120, 130, 140, 150}, 6*time.Hour)
}

func (suite *VariabilityTestSuite) TestMODD() {
	assert.Equal(suite.T(), 20.0, MODD(suite.dailyFixture()))
}

func (suite *VariabilityTestSuite) TestMODDNeedsTwoDays() {
	assert.True(suite.T(), math.IsNaN(MODD(suite.fixture())))
}

func (suite *VariabilityTestSuite) TestSDDMIndex() {
	assert.InDelta(suite.T(), 14.142, SDDMIndex(suite.dailyFixture()), 1e-3)
}

func (suite *VariabilityTestSuite) TestSDWIndex() {
	assert.InDelta(suite.T(), 12.910, SDWIndex(suite.dailyFixture()), 1e-3)
}

func (suite *VariabilityTestSuite) TestGlucoseROC() {
	roc := GlucoseROC(suite.fixture())
	assert.Len(suite.T(), roc, 11)
	for i := 0; i < 3; i++ {
		assert.True(suite.T(), math.IsNaN(roc[i]))
	}
	expected := []float64{2.667, 4.667, 4.667, 8, 5.333, 9.333, 4}
	for i, want := range expected {
		assert.InDelta(suite.T(), want, roc[i+3], 1e-3)
	}
	assert.True(suite.T(), math.IsNaN(roc[10]))
}

func (suite *VariabilityTestSuite) TestStdGlucoseROC() {
	assert.InDelta(suite.T(), 2.332, StdGlucoseROC(suite.fixture()), 1e-3)
}

func (suite *VariabilityTestSuite) TestEmptySeries() {
	var s defs.Series
	assert.True(suite.T(), math.IsNaN(MeanGlucose(s)))
	assert.True(suite.T(), math.IsNaN(MedianGlucose(s)))
	assert.True(suite.T(), math.IsNaN(StdGlucose(s)))
	assert.True(suite.T(), math.IsNaN(RangeGlucose(s)))
	assert.True(suite.T(), math.IsNaN(IQRGlucose(s)))
	assert.True(suite.T(), math.IsNaN(AUCGlucose(s)))
	assert.True(suite.T(), math.IsNaN(CONGA(s)))
	assert.True(suite.T(), math.IsNaN(MODD(s)))
	assert.True(suite.T(), math.IsNaN(SDDMIndex(s)))
	assert.True(suite.T(), math.IsNaN(SDWIndex(s)))
	assert.True(suite.T(), math.IsNaN(StdGlucoseROC(s)))
}

func (suite *VariabilityTestSuite) TestSingleSample() {
	s := newSeries(suite.T(), []float64{120}, 5*time.Minute)
	assert.Equal(suite.T(), 120.0, MeanGlucose(s))
	assert.True(suite.T(), math.IsNaN(StdGlucose(s)))
	assert.True(suite.T(), math.IsNaN(IQRGlucose(s)))
}
