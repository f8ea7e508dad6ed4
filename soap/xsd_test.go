package soap

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationRoundTrip(t *testing.T) {
	for _, d := range []time.Duration{
		0,
		time.Second,
		90 * time.Minute,
		-36 * time.Hour,
		1500 * time.Millisecond,
		time.Nanosecond,
		math.MaxInt64,
		math.MinInt64,
	} {
		text, err := FormatValue(d)
		require.NoError(t, err)
		var parsed time.Duration
		require.NoError(t, ParseValue(text, &parsed), text)
		assert.Equal(t, d, parsed, text)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "PT0S", formatDuration(0))
	assert.Equal(t, "PT1H30M", formatDuration(90*time.Minute))
	assert.Equal(t, "-P1DT12H", formatDuration(-36*time.Hour))
	assert.Equal(t, "PT1.5S", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "-P106751DT23H47M16.854775808S", formatDuration(math.MinInt64))
}

func TestParseDurationErrors(t *testing.T) {
	var d time.Duration
	for _, text := range []string{"", "P", "1D", "PT1D", "P1H", "P1.5D", "P106752D", "PTXS"} {
		assert.Error(t, ParseValue(text, &d), text)
	}
}

func TestFloatSpecialValues(t *testing.T) {
	text, _ := FormatValue(math.Inf(1))
	assert.Equal(t, "INF", text)
	text, _ = FormatValue(float32(math.Inf(-1)))
	assert.Equal(t, "-INF", text)

	var f float64
	require.NoError(t, ParseValue("NaN", &f))
	assert.True(t, math.IsNaN(f))

	var f32 float32
	require.NoError(t, ParseValue("2.7182817", &f32))
	assert.Equal(t, float32(2.71828183), f32)
}

func TestPrimitiveValues(t *testing.T) {
	id := uuid.MustParse("EFEA21A0-F59A-4F43-B5D3-B2C667CA6FB6")
	text, err := FormatValue(id)
	require.NoError(t, err)
	assert.Equal(t, "efea21a0-f59a-4f43-b5d3-b2c667ca6fb6", text)

	text, err = FormatValue(Char('a'))
	require.NoError(t, err)
	assert.Equal(t, "97", text)

	text, err = FormatValue([]byte{0x60, 0x61, 0x62})
	require.NoError(t, err)
	assert.Equal(t, "YGFi", text)

	var day time.Weekday
	require.NoError(t, ParseValue("Sunday", &day))
	assert.Equal(t, time.Sunday, day)
	assert.Error(t, ParseValue("Someday", &day))

	var b bool
	require.NoError(t, ParseValue("1", &b))
	assert.True(t, b)

	var small int8
	assert.Error(t, ParseValue("128", &small))
}

func TestDateTimeWithoutZoneIsUTC(t *testing.T) {
	var dt time.Time
	require.NoError(t, ParseValue("2000-01-01T00:00:00", &dt))
	assert.True(t, dt.Equal(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))

	text, err := FormatValue(dt)
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T00:00:00Z", text)
}

func TestUnsupportedTypes(t *testing.T) {
	_, err := FormatValue(struct{}{})
	assert.Error(t, err)
	assert.Error(t, ParseValue("x", &struct{}{}))
}
