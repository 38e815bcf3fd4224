package accuracy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"glyco/defs"
)

type AccuracyTestSuite struct {
	suite.Suite
}

func TestAccuracyTestSuite(t *testing.T) {
	suite.Run(t, new(AccuracyTestSuite))
}

func newSeries(t *testing.T, values []float64) defs.Series {
	t.Helper()
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(values))
	for i := range times {
		times[i] = base.Add(time.Duration(i) * 5 * time.Minute)
	}
	s, err := defs.NewSeries(times, values)
	assert.NoError(t, err)
	return s
}

func (suite *AccuracyTestSuite) refEstPair() (defs.Series, defs.Series) {
	nan := math.NaN()
	ref := newSeries(suite.T(), []float64{40, 50, 50, 80, 120, 120, 200, 200, 260, 260, nan})
	est := newSeries(suite.T(), []float64{30, 70, 70, 70, 130, 130, nan, nan, 260, 260, 260})
	return ref, est
}

func (suite *AccuracyTestSuite) TestRMSE() {
	ref, est := suite.refEstPair()
	v, err := RMSE(ref, est)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 12.247, v, 0.001)
}

func (suite *AccuracyTestSuite) TestMARD() {
	ref, est := suite.refEstPair()
	v, err := MARD(ref, est)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 16.77, v, 0.01)
}

func (suite *AccuracyTestSuite) TestCOD() {
	ref, est := suite.refEstPair()
	v, err := COD(ref, est)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 97.893, v, 0.001)
}

func (suite *AccuracyTestSuite) TestMetricsIgnorePairsWithMissingSamples() {
	nan := math.NaN()
	ref := newSeries(suite.T(), []float64{100, nan, 100})
	est := newSeries(suite.T(), []float64{100, 200, nan})
	v, err := RMSE(ref, est)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, v)
}

func (suite *AccuracyTestSuite) TestMetricsNaNWithoutPairs() {
	nan := math.NaN()
	empty := newSeries(suite.T(), nil)
	disjoint1 := newSeries(suite.T(), []float64{nan, 100})
	disjoint2 := newSeries(suite.T(), []float64{100, nan})

	for _, metric := range []func(defs.Series, defs.Series) (float64, error){RMSE, MARD, COD, GRMSE} {
		v, err := metric(empty, empty)
		assert.NoError(suite.T(), err)
		assert.True(suite.T(), math.IsNaN(v))

		v, err = metric(disjoint1, disjoint2)
		assert.NoError(suite.T(), err)
		assert.True(suite.T(), math.IsNaN(v))
	}
}

func (suite *AccuracyTestSuite) TestMetricsRejectMismatchedGrids() {
	ref := newSeries(suite.T(), []float64{100, 110, 120})
	est := newSeries(suite.T(), []float64{100, 110})
	_, err := RMSE(ref, est)
	assert.Error(suite.T(), err)
}

func (suite *AccuracyTestSuite) TestGRMSEPinned() {
	ref := newSeries(suite.T(), []float64{120, 120})
	est := newSeries(suite.T(), []float64{80, 80})
	v, err := GRMSE(ref, est)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 63.246, v, 0.001)

	rmse, err := RMSE(ref, est)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 40.0, rmse, 1e-9)
}

func (suite *AccuracyTestSuite) TestGRMSEMatchesRMSEOutsidePenaltyRegions() {
	ref := newSeries(suite.T(), []float64{40, 50, 45, 50})
	est := newSeries(suite.T(), []float64{50, 40, 45, 60})

	g, err := GRMSE(ref, est)
	assert.NoError(suite.T(), err)
	r, err := RMSE(ref, est)
	assert.NoError(suite.T(), err)

	assert.InDelta(suite.T(), 8.6603, r, 0.0001)
	assert.InDelta(suite.T(), r, g, 1e-9)
}

func (suite *AccuracyTestSuite) TestGRMSENeverBelowRMSE() {
	ref, est := suite.refEstPair()
	g, err := GRMSE(ref, est)
	assert.NoError(suite.T(), err)
	r, err := RMSE(ref, est)
	assert.NoError(suite.T(), err)
	assert.GreaterOrEqual(suite.T(), g, r)
}

func (suite *AccuracyTestSuite) TestGRMSEIdenticalTraces() {
	ref := newSeries(suite.T(), []float64{60, 120, 250, 300})
	v, err := GRMSE(ref, ref)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, v)
}

func (suite *AccuracyTestSuite) TestClarke() {
	nan := math.NaN()
	ref := newSeries(suite.T(), []float64{40, 50, 50, 80, 180, 180, 170, 170, 260, 100, nan})
	est := newSeries(suite.T(), []float64{80, 80, 80, 70, 130, 130, nan, nan, 60, 220, 60})

	res, err := Clarke(ref, est)
	assert.NoError(suite.T(), err)
	assert.InDelta(suite.T(), 12.5, res.A, 1e-9)
	assert.InDelta(suite.T(), 25.0, res.B, 1e-9)
	assert.InDelta(suite.T(), 12.5, res.C, 1e-9)
	assert.InDelta(suite.T(), 37.5, res.D, 1e-9)
	assert.InDelta(suite.T(), 12.5, res.E, 1e-9)
}

func (suite *AccuracyTestSuite) TestClarkeNaNWithoutPairs() {
	empty := newSeries(suite.T(), nil)
	res, err := Clarke(empty, empty)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), math.IsNaN(res.A))
	assert.True(suite.T(), math.IsNaN(res.E))
}

func (suite *AccuracyTestSuite) TestTimeDelay() {
	nan := math.NaN()
	ref := newSeries(suite.T(), []float64{80, 50, 50, 80, 120, 120, 200, 200, 260, 260, nan})
	est := newSeries(suite.T(), []float64{30, 70, 70, 70, 130, 130, nan, nan, 260, 260, 260})

	v, err := TimeDelay(ref, est, 30)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 30.0, v)
}

func (suite *AccuracyTestSuite) TestTimeDelayDetectsShift() {
	ref := make([]float64, 11)
	est := make([]float64, 11)
	for i := range ref {
		ref[i] = 100 + 10*float64(i)
		est[i] = 80 + 10*float64(i)
	}

	// The estimate lags the reference by two grid steps.
	v, err := TimeDelay(newSeries(suite.T(), ref), newSeries(suite.T(), est), 30)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 20.0, v)
}

func (suite *AccuracyTestSuite) TestTimeDelayNaNWithoutPairs() {
	empty := newSeries(suite.T(), nil)
	v, err := TimeDelay(empty, empty, 30)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), math.IsNaN(v))
}
