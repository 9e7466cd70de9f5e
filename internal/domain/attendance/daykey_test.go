package attendance

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyOf_LocalBoundary(t *testing.T) {
	ts := time.Date(2024, 3, 5, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, DayKey("2024-03-05"), DayKeyOf(ts, time.UTC))
	assert.Equal(t, DayKey("2024-03-04"), DayKeyOf(ts, time.FixedZone("BRT", -3*60*60)))
	assert.Equal(t, DayKey("2024-03-05"), DayKeyOf(ts, nil))
}

func TestDayKeyFromDate_IgnoresZone(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.FixedZone("X", 10*60*60))
	assert.Equal(t, DayKey("2024-03-05"), DayKeyFromDate(d))
}

func TestParseDayKey(t *testing.T) {
	d, err := ParseDayKey("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d.Weekday())
	assert.True(t, d.IsWeekend())

	_, err = ParseDayKey("2024-3-9")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayKey_Bounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	start, end := DayKey("2024-03-04").Bounds(loc)

	assert.Equal(t, time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestDayKey_Before(t *testing.T) {
	assert.True(t, DayKey("2024-02-29").Before("2024-03-01"))
	assert.False(t, DayKey("2024-03-01").Before("2024-03-01"))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02", m.String())
	assert.Equal(t, DayKey("2024-02-01"), m.FirstDay())
	assert.Equal(t, DayKey("2024-02-29"), m.LastDay())
	assert.Len(t, m.Days(), 29)
	assert.True(t, m.Contains("2024-02-29"))
	assert.False(t, m.Contains("2024-03-01"))

	for _, bad := range []string{"2024-13", "2024/02", "", "24-02"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestMonth_Range(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	start, end := Month{Year: 2024, Month: time.December}.Range(loc)

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), end)
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, Month{Year: 2024, Month: time.March}, MonthOf("2024-03-31"))
}

func TestDayKey_Bounds_DSTAtMidnight(t *testing.T) {
	// Chile moves clocks from 00:00 -04 to 01:00 -03 on 2024-09-08
	// and from 00:00 -03 back to 23:00 -04 on 2024-04-07.
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	start, end := DayKey("2024-09-08").Bounds(loc)
	assert.Equal(t, time.Date(2024, 9, 8, 4, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, DayKey("2024-09-08"), DayKeyOf(start, loc))
	assert.Equal(t, DayKey("2024-09-08"), DayKeyOf(end.Add(-time.Nanosecond), loc))
	assert.Equal(t, DayKey("2024-09-09"), DayKeyOf(end, loc))
	assert.Equal(t, 23*time.Hour, end.Sub(start))

	prevStart, prevEnd := DayKey("2024-09-07").Bounds(loc)
	assert.Equal(t, start, prevEnd)
	assert.Equal(t, 24*time.Hour, prevEnd.Sub(prevStart))

	lateEvening := time.Date(2024, 9, 7, 23, 30, 0, 0, loc)
	assert.Equal(t, DayKey("2024-09-07"), DayKeyOf(lateEvening, loc))
	assert.True(t, lateEvening.Before(start), "previous evening must fall outside the next day")

	fallStart, fallEnd := DayKey("2024-04-06").Bounds(loc)
	assert.Equal(t, 25*time.Hour, fallEnd.Sub(fallStart))
	assert.Equal(t, DayKey("2024-04-07"), DayKeyOf(fallEnd, loc))
}

func TestMonth_Range_DSTAtMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	start, end := Month{Year: 2024, Month: time.September}.Range(loc)
	assert.Equal(t, DayKey("2024-09-01"), DayKeyOf(start, loc))
	assert.Equal(t, DayKey("2024-09-30"), DayKeyOf(end.Add(-time.Nanosecond), loc))
	assert.Equal(t, DayKey("2024-10-01"), DayKeyOf(end, loc))

	utcStart, utcEnd := Month{Year: 2024, Month: time.February}.Range(nil)
	assert.Equal(t, 29*24*time.Hour, utcEnd.Sub(utcStart))
}
