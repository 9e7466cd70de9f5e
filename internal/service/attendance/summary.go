package attendance

import (
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
)

// SummaryInput is everything Summarize needs; it performs no I/O.
type SummaryInput struct {
	EmployeeID string
	Month      attendance.Month
	Events     []punch.Event

	// Justifications in store order. The first one for a date wins.
	Justifications []justification.Justification

	// Today is the first day that can no longer be an absence
	Today    attendance.DayKey
	Location *time.Location
}

// Summarize aggregates one month of punches and justifications.
// Events and justifications outside the month are ignored.
func Summarize(in SummaryInput) attendance.MonthlySummary {
	s := attendance.MonthlySummary{
		EmployeeID:           in.EmployeeID,
		Month:                in.Month,
		Today:                in.Today,
		JustificationsByType: make(map[justification.Type]int),
	}

	byDay := make(map[attendance.DayKey][]punch.Event)
	for _, e := range in.Events {
		day := attendance.DayKeyOf(e.Timestamp, in.Location)
		if !in.Month.Contains(day) {
			continue
		}
		byDay[day] = append(byDay[day], e)
	}

	for _, day := range slices.Sorted(maps.Keys(byDay)) {
		dh := ComputeDailyHours(byDay[day], day, in.Location)
		s.Days = append(s.Days, dh)
		s.TotalHours += dh.Hours
		for _, ph := range dh.Projects {
			for _, iv := range ph.Intervals {
				if iv.Suspect {
					s.SuspectIntervals++
				}
			}
		}
	}
	// any punch counts the day as worked, even without a complete pair
	s.WorkedDays = len(s.Days)

	justified := make(map[attendance.DayKey]struct{})
	for _, j := range in.Justifications {
		day := attendance.DayKeyFromDate(j.Date)
		if !in.Month.Contains(day) {
			continue
		}
		if _, dup := justified[day]; dup {
			if !slices.Contains(s.DuplicateJustificationDays, day) {
				s.DuplicateJustificationDays = append(s.DuplicateJustificationDays, day)
			}
			continue
		}
		justified[day] = struct{}{}
		s.Justifications = append(s.Justifications, j)
		s.JustificationsByType[j.Type]++
	}
	slices.SortStableFunc(s.Justifications, func(a, b justification.Justification) int {
		return strings.Compare(
			string(attendance.DayKeyFromDate(a.Date)),
			string(attendance.DayKeyFromDate(b.Date)),
		)
	})
	slices.Sort(s.DuplicateJustificationDays)
	s.JustificationCount = len(s.Justifications)

	for _, day := range in.Month.Days() {
		if day.IsWeekend() {
			continue
		}
		s.BusinessDays++

		if !day.Before(in.Today) {
			continue
		}
		if _, worked := byDay[day]; worked {
			continue
		}
		if _, ok := justified[day]; ok {
			continue
		}
		s.Absences++
	}

	if s.WorkedDays > 0 {
		s.AverageHoursPerDay = s.TotalHours / float64(s.WorkedDays)
	}

	return s
}

// RoundHours rounds half away from zero to two decimals. Totals are summed
// unrounded and rounded once for display.
func RoundHours(v float64) float64 {
	return math.Round(v*100) / 100
}
