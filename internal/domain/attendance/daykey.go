package attendance

import (
	"fmt"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DayKey is a calendar date in the employee's local time, formatted YYYY-MM-DD.
// The fixed width format makes string order equal to calendar order.
type DayKey string

// DayKeyOf truncates t to its local calendar day.
func DayKeyOf(t time.Time, loc *time.Location) DayKey {
	if loc == nil {
		loc = time.UTC
	}
	return DayKey(t.In(loc).Format(dayLayout))
}

// DayKeyFromDate formats a date value whose time of day is meaningless,
// such as a DATE column scanned by pgx.
func DayKeyFromDate(t time.Time) DayKey {
	return DayKey(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(dayLayout))
}

func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DayKey(t.Format(dayLayout)), nil
}

// Time returns the day at midnight UTC. A malformed key yields the zero time.
func (d DayKey) Time() time.Time {
	t, _ := time.Parse(dayLayout, string(d))
	return t
}

// Start returns the first instant of the day in loc. Where midnight is
// skipped by a DST change, that is the moment the clocks jump.
func (d DayKey) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := d.Time()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	for DayKeyOf(start, loc) < d {
		_, end := start.ZoneBounds()
		if end.IsZero() {
			break
		}
		start = end
	}
	return start
}

// Bounds returns [start of the day, start of the next day) in loc.
func (d DayKey) Bounds(loc *time.Location) (time.Time, time.Time) {
	return d.Start(loc), d.Next().Start(loc)
}

// Next returns the following calendar day.
func (d DayKey) Next() DayKey {
	return DayKey(d.Time().AddDate(0, 0, 1).Format(dayLayout))
}

func (d DayKey) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d DayKey) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d DayKey) Before(other DayKey) bool {
	return d < other
}

func (d DayKey) String() string {
	return string(d)
}

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month containing d.
func MonthOf(d DayKey) Month {
	t := d.Time()
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) FirstDay() DayKey {
	return DayKey(m.first().Format(dayLayout))
}

func (m Month) LastDay() DayKey {
	return DayKey(m.first().AddDate(0, 1, -1).Format(dayLayout))
}

// Days lists every calendar day of the month in order.
func (m Month) Days() []DayKey {
	first := m.first()
	next := first.AddDate(0, 1, 0)
	days := make([]DayKey, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, DayKey(d.Format(dayLayout)))
	}
	return days
}

// Range returns [start of the 1st, start of the next month's 1st) in loc.
func (m Month) Range(loc *time.Location) (time.Time, time.Time) {
	next := m.first().AddDate(0, 1, 0)
	return m.FirstDay().Start(loc), DayKey(next.Format(dayLayout)).Start(loc)
}

func (m Month) Contains(d DayKey) bool {
	return d >= m.FirstDay() && d <= m.LastDay()
}
