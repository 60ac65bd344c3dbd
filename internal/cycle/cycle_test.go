package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAtFormats(t *testing.T) {
	// Example from the launcher docs: invocation at 2024-03-01 14:30 UTC.
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	oneBack := At(now, 1)
	assert.Equal(t, "20240301", oneBack.Date())
	assert.Equal(t, "13", oneBack.Hour())
	assert.Equal(t, "2024030113", oneBack.DateTime())

	threeBack := At(now, 3)
	assert.Equal(t, "2024030111", threeBack.DateTime())
}

func TestAtCrossesDayBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 15, 0, 0, time.UTC)

	c := At(now, 1)
	assert.Equal(t, "20240229", c.Date()) // leap year
	assert.Equal(t, "23", c.Hour())
	assert.Equal(t, "2024022923", c.DateTime())
}

func TestAtCrossesYearBoundary(t *testing.T) {
	now := time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC)

	c := At(now, 3)
	assert.Equal(t, "2024123123", c.DateTime())
}

func TestAtConvertsToUTC(t *testing.T) {
	// Local zone offsets must not leak into cycle names.
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2024, 3, 1, 19, 30, 0, 0, loc) // 14:30 UTC

	c := At(now, 1)
	assert.Equal(t, "2024030113", c.DateTime())
}

func TestSameHourSameCycle(t *testing.T) {
	a := At(time.Date(2024, 3, 1, 14, 1, 0, 0, time.UTC), 1)
	b := At(time.Date(2024, 3, 1, 14, 59, 59, 0, time.UTC), 1)
	assert.Equal(t, a.DateTime(), b.DateTime())
}

func TestStringMatchesDateTime(t *testing.T) {
	c := At(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), 1)
	assert.Equal(t, c.DateTime(), c.String())
}
