package device

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DeviceTestSuite struct {
	suite.Suite
}

func TestDeviceTestSuite(t *testing.T) {
	suite.Run(t, new(DeviceTestSuite))
}

const dexcomExport = `Index,Timestamp (YYYY-MM-DDThh:mm:ss),Event Type,Event Subtype,Patient Info,Device Info,Source Device ID,Glucose Value (mg/dL),Insulin Value (u),Carb Value (grams)
1,2000-01-01T00:05:00,EGV,,,,SM1,110,,
2,2000-01-01T00:00:00,EGV,,,,SM1,100,,
3,2000-01-01T00:10:00,Insulin,,,,SM1,,1.5,
4,2000-01-01T00:10:00,EGV,,,,SM1,Low,,
5,2000-01-01T00:15:00,EGV,,,,SM1,High,,
`

func (suite *DeviceTestSuite) TestParseDexcom() {
	times, values, err := ParseDexcom(strings.NewReader(dexcomExport))
	assert.NoError(suite.T(), err)

	// Non-EGV rows are skipped, the rest sorted by timestamp with
	// out-of-range readings clamped.
	assert.Equal(suite.T(), []float64{100, 110, 39, 401}, values)
	assert.Equal(suite.T(), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), times[0])
	assert.Equal(suite.T(), time.Date(2000, 1, 1, 0, 15, 0, 0, time.UTC), times[3])
}

func (suite *DeviceTestSuite) TestParseDexcomBadValue() {
	export := "h1,h2,h3,h4,h5,h6,h7,h8\n1,2000-01-01T00:00:00,EGV,,,,SM1,oops\n"
	_, _, err := ParseDexcom(strings.NewReader(export))
	assert.Error(suite.T(), err)
}

const eversenseExport = `Date,Time,Glucose,Unit
01-January-2000,12:05 AM,6,mmol/L
01-January-2000,12:00 AM,108,mg/dL
`

func (suite *DeviceTestSuite) TestParseEversense() {
	times, values, err := ParseEversense(strings.NewReader(eversenseExport))
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), times[0])
	assert.Equal(suite.T(), time.Date(2000, 1, 1, 0, 5, 0, 0, time.UTC), times[1])
	assert.Equal(suite.T(), 108.0, values[0])
	// mmol/l readings are converted to mg/dl.
	assert.InDelta(suite.T(), 108.108, values[1], 1e-9)
}

func (suite *DeviceTestSuite) TestParseEversenseBadDate() {
	export := "Date,Time,Glucose,Unit\nJanuary 1st,12:00 AM,108,mg/dL\n"
	_, _, err := ParseEversense(strings.NewReader(export))
	assert.Error(suite.T(), err)
}

const libreExport = `Glucose Data,Export,,,,,
Serial Number,Device,Record Type,Date,Time,Historic Glucose,Scan Glucose
ABC123,FreeStyle,1,01-01-2000,12:10 AM,,121
ABC123,FreeStyle,0,01-01-2000,12:00 AM,,100
ABC123,FreeStyle,0,01-01-2000,12:05 AM,,110
`

func (suite *DeviceTestSuite) TestParseLibre() {
	times, values, err := ParseLibre(strings.NewReader(libreExport))
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), []float64{100, 110, 121}, values)
	assert.Equal(suite.T(), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), times[0])
	assert.Equal(suite.T(), time.Date(2000, 1, 1, 0, 10, 0, 0, time.UTC), times[2])
}

func (suite *DeviceTestSuite) TestParseLibreBadValue() {
	export := "h\nh1,h2,h3,h4,h5,h6,h7\nABC123,FreeStyle,0,01-01-2000,12:00 AM,,oops\n"
	_, _, err := ParseLibre(strings.NewReader(export))
	assert.Error(suite.T(), err)
}

func (suite *DeviceTestSuite) TestReadMissingFile() {
	_, _, err := ReadDexcomFile("no-such-export.csv")
	assert.Error(suite.T(), err)
}
