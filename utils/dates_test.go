package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateToDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2024-06-03 03:30 UTC+9 is still 2024-06-02 in UTC.
	in := time.Date(2024, 6, 3, 3, 30, 0, 0, loc)

	got := TruncateToDay(in)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-06-02", DayKey(in))
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-06-10")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDay("June 10, 2024")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	from, _ := ParseDay("2024-06-03")
	to, _ := ParseDay("2024-06-10")

	assert.Equal(t, 7, DaysBetween(from, to))
	assert.Equal(t, -7, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from.Add(23*time.Hour)))
}
