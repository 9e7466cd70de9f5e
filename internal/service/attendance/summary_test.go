package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	march2024 = attendance.Month{Year: 2024, Month: time.March}
	april2024 = attendance.Month{Year: 2024, Month: time.April}
)

func newJustification(id, date string, typ justification.Type) justification.Justification {
	d, _ := time.Parse("2006-01-02", date)
	return justification.Justification{
		ID:         id,
		EmployeeID: "0190a000-0000-7000-8000-0000000000e1",
		Date:       d,
		Type:       typ,
	}
}

// workDay is a 4 hour morning on projectA.
func workDay(t *testing.T, day string) []punch.Event {
	return []punch.Event{
		newEvent(t, day+"-in", projectA, tracking.KindEntry, day+" 08:00"),
		newEvent(t, day+"-out", projectA, tracking.KindExit, day+" 12:00"),
	}
}

func TestSummarize_SingleWorkedMonday(t *testing.T) {
	s := Summarize(SummaryInput{
		EmployeeID: "emp",
		Month:      march2024,
		Events:     workDay(t, "2024-03-04"),
		Today:      "2024-04-01",
		Location:   brt,
	})

	assert.Equal(t, 1, s.WorkedDays)
	assert.Equal(t, 4.0, s.PerDayHours()["2024-03-04"])
	assert.Equal(t, 4.0, s.TotalHours)
	assert.Equal(t, 4.0, s.AverageHoursPerDay)
	assert.Equal(t, 21, s.BusinessDays)
	assert.Equal(t, 20, s.Absences)

	status := ResolveDayStatus("2024-03-04", s.WorkedDaySet(), s.JustificationByDay(), s.Today)
	assert.Equal(t, attendance.StatusWorked, status.Kind)
}

func TestSummarize_SaturdayIsNeitherBusinessDayNorAbsence(t *testing.T) {
	s := Summarize(SummaryInput{
		Month:    march2024,
		Events:   workDay(t, "2024-03-04"),
		Today:    "2024-03-11",
		Location: brt,
	})

	// business days before the 11th: 1, 4-8; the 4th is worked
	assert.Equal(t, 5, s.Absences)
	assert.Equal(t, 21, s.BusinessDays)

	status := ResolveDayStatus("2024-03-09", s.WorkedDaySet(), s.JustificationByDay(), s.Today)
	assert.Equal(t, attendance.StatusWeekend, status.Kind)
}

func TestSummarize_MedicalLeaveIsNotAnAbsence(t *testing.T) {
	s := Summarize(SummaryInput{
		Month:  march2024,
		Events: workDay(t, "2024-03-04"),
		Justifications: []justification.Justification{
			newJustification("j1", "2024-03-05", justification.TypeMedicalLeave),
		},
		Today:    "2024-03-06",
		Location: brt,
	})

	// 1st unaccounted, 4th worked, 5th justified
	assert.Equal(t, 1, s.Absences)
	assert.Equal(t, 1, s.JustificationCount)
	assert.Equal(t, 1, s.JustificationsByType[justification.TypeMedicalLeave])

	status := ResolveDayStatus("2024-03-05", s.WorkedDaySet(), s.JustificationByDay(), s.Today)
	assert.Equal(t, attendance.StatusJustified, status.Kind)
	require.NotNil(t, status.JustificationType)
	assert.Equal(t, justification.TypeMedicalLeave, *status.JustificationType)
}

func TestSummarize_FutureDaysAreNeverAbsences(t *testing.T) {
	var events []punch.Event
	for _, day := range []string{
		"2024-04-01", "2024-04-02", "2024-04-03", "2024-04-04", "2024-04-05",
		"2024-04-08", "2024-04-09", "2024-04-10", "2024-04-11", "2024-04-12",
	} {
		events = append(events, workDay(t, day)...)
	}

	s := Summarize(SummaryInput{
		Month:  april2024,
		Events: events,
		Justifications: []justification.Justification{
			newJustification("j1", "2024-04-15", justification.TypeVacation),
			newJustification("j2", "2024-04-16", justification.TypeVacation),
		},
		Today:    "2024-04-17",
		Location: brt,
	})

	assert.Equal(t, 22, s.BusinessDays)
	assert.Equal(t, 10, s.WorkedDays)
	assert.Equal(t, 0, s.Absences)
	assert.Equal(t, 2, s.JustificationsByType[justification.TypeVacation])
	assert.Equal(t, 40.0, s.TotalHours)
}

func TestSummarize_Idempotent(t *testing.T) {
	in := SummaryInput{
		EmployeeID: "emp",
		Month:      march2024,
		Events:     append(workDay(t, "2024-03-04"), fullDay(t)[2:]...),
		Justifications: []justification.Justification{
			newJustification("j1", "2024-03-05", justification.TypeMedicalLeave),
			newJustification("j2", "2024-03-05", justification.TypeVacation),
		},
		Today:    "2024-03-20",
		Location: brt,
	}

	assert.Equal(t, Summarize(in), Summarize(in))
}

func TestSummarize_DuplicateJustificationFirstWins(t *testing.T) {
	s := Summarize(SummaryInput{
		Month: march2024,
		Justifications: []justification.Justification{
			newJustification("j1", "2024-03-05", justification.TypeTimeBank),
			newJustification("j2", "2024-03-05", justification.TypeMedicalLeave),
			newJustification("j3", "2024-03-05", justification.TypeVacation),
		},
		Today:    "2024-03-01",
		Location: brt,
	})

	assert.Equal(t, 1, s.JustificationCount)
	assert.Equal(t, map[justification.Type]int{justification.TypeTimeBank: 1}, s.JustificationsByType)
	assert.Equal(t, []attendance.DayKey{"2024-03-05"}, s.DuplicateJustificationDays)
	require.Len(t, s.Justifications, 1)
	assert.Equal(t, "j1", s.Justifications[0].ID)
}

func TestSummarize_JustifiedDayWithPunchesCountsAsWorked(t *testing.T) {
	s := Summarize(SummaryInput{
		Month:  march2024,
		Events: workDay(t, "2024-03-04"),
		Justifications: []justification.Justification{
			newJustification("j1", "2024-03-04", justification.TypeCompensatory),
		},
		Today:    "2024-03-05",
		Location: brt,
	})

	assert.Equal(t, 1, s.WorkedDays)
	// only the 1st is an absence
	assert.Equal(t, 1, s.Absences)

	// display prefers the justification
	status := ResolveDayStatus("2024-03-04", s.WorkedDaySet(), s.JustificationByDay(), s.Today)
	assert.Equal(t, attendance.StatusJustified, status.Kind)
}

func TestSummarize_DayWithOnlyUnpairedPunchIsWorked(t *testing.T) {
	s := Summarize(SummaryInput{
		Month:    march2024,
		Events:   workDay(t, "2024-03-04")[:1],
		Today:    "2024-03-05",
		Location: brt,
	})

	assert.Equal(t, 1, s.WorkedDays)
	assert.Zero(t, s.TotalHours)
	assert.Zero(t, s.AverageHoursPerDay)
	dh, ok := s.Day("2024-03-04")
	require.True(t, ok)
	assert.Len(t, dh.Events, 1)
	require.NotNil(t, dh.Projects[0].Unpaired)
}

func TestSummarize_IgnoresDataOutsideMonth(t *testing.T) {
	events := append(workDay(t, "2024-02-29"), workDay(t, "2024-03-01")...)
	events = append(events, workDay(t, "2024-04-01")...)

	s := Summarize(SummaryInput{
		Month:  march2024,
		Events: events,
		Justifications: []justification.Justification{
			newJustification("j1", "2024-02-28", justification.TypeVacation),
		},
		Today:    "2024-03-01",
		Location: brt,
	})

	assert.Equal(t, 1, s.WorkedDays)
	assert.Equal(t, 0, s.JustificationCount)
	assert.Equal(t, 4.0, s.TotalHours)
}

func TestSummarize_EmptyMonth(t *testing.T) {
	s := Summarize(SummaryInput{
		Month:    march2024,
		Today:    "2024-02-15",
		Location: brt,
	})

	assert.Equal(t, 0, s.WorkedDays)
	assert.Equal(t, 0, s.Absences)
	assert.Equal(t, 21, s.BusinessDays)
	assert.Zero(t, s.AverageHoursPerDay)
	assert.Empty(t, s.Days)
	assert.NotNil(t, s.JustificationsByType)
}

func TestSummarize_CountsSuspectIntervals(t *testing.T) {
	events := []punch.Event{
		newEvent(t, "e1", projectA, tracking.KindEntry, "2024-03-04 09:00"),
		newEvent(t, "e2", projectA, tracking.KindExit, "2024-03-04 09:00"),
	}

	s := Summarize(SummaryInput{Month: march2024, Events: events, Today: "2024-03-05", Location: brt})

	assert.Equal(t, 1, s.SuspectIntervals)
}

func TestSummarize_AverageIsNotRoundedInternally(t *testing.T) {
	events := []punch.Event{
		newEvent(t, "a1", projectA, tracking.KindEntry, "2024-03-04 08:00"),
		newEvent(t, "a2", projectA, tracking.KindExit, "2024-03-04 08:20"),
		newEvent(t, "b1", projectA, tracking.KindEntry, "2024-03-05 08:00"),
		newEvent(t, "b2", projectA, tracking.KindExit, "2024-03-05 08:20"),
		newEvent(t, "c1", projectA, tracking.KindEntry, "2024-03-06 08:00"),
		newEvent(t, "c2", projectA, tracking.KindExit, "2024-03-06 08:20"),
	}

	s := Summarize(SummaryInput{Month: march2024, Events: events, Today: "2024-03-07", Location: brt})

	assert.InDelta(t, 1.0, s.TotalHours, 1e-9)
	assert.Equal(t, 1.0, RoundHours(s.TotalHours))
	assert.Equal(t, 0.33, RoundHours(s.AverageHoursPerDay))
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 3.33, RoundHours(10.0/3))
	assert.Equal(t, 2.67, RoundHours(8.0/3))
	assert.Equal(t, -1.5, RoundHours(-1.5))
	assert.Equal(t, 0.0, RoundHours(0))
}
