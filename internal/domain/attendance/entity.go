package attendance

import (
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
)

// UnknownProjectName is shown for events whose project no longer exists.
const UnknownProjectName = "unknown"

// WorkInterval is two consecutive punches of one project on one day.
// Suspect marks intervals whose exit does not come after the entry.
type WorkInterval struct {
	ProjectID   string
	ProjectName string
	EntryKind   tracking.Kind
	ExitKind    tracking.Kind
	Entry       time.Time
	Exit        time.Time
	Hours       float64
	Suspect     bool
}

// ProjectHours is the pairing result for one project on one day.
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	Intervals   []WorkInterval
	Hours       float64
	Unpaired    *punch.Event // trailing punch without a partner
}

// DailyHours holds one day's pairing result. Events keeps every raw punch of
// the day, including unpaired ones, ordered by timestamp.
type DailyHours struct {
	Day      DayKey
	Projects []ProjectHours
	Hours    float64
	Events   []punch.Event
}

// MonthlySummary is recomputed on every request and never stored.
// Numeric fields are unrounded.
type MonthlySummary struct {
	EmployeeID   string
	Month        Month
	Today        DayKey
	TotalHours   float64
	WorkedDays   int
	BusinessDays int
	Absences     int

	JustificationCount   int
	JustificationsByType map[justification.Type]int
	AverageHoursPerDay   float64

	// Days holds only days with at least one punch, in calendar order
	Days []DailyHours

	// Justifications of the month, one per date, in date order
	Justifications             []justification.Justification
	DuplicateJustificationDays []DayKey
	SuspectIntervals           int
}

// Day returns the pairing result for d, if it has any punch.
func (s MonthlySummary) Day(d DayKey) (DailyHours, bool) {
	for _, dh := range s.Days {
		if dh.Day == d {
			return dh, true
		}
	}
	return DailyHours{}, false
}

// PerDayHours maps each worked day to its total hours.
func (s MonthlySummary) PerDayHours() map[DayKey]float64 {
	out := make(map[DayKey]float64, len(s.Days))
	for _, dh := range s.Days {
		out[dh.Day] = dh.Hours
	}
	return out
}

// WorkedDaySet returns the days with at least one punch.
func (s MonthlySummary) WorkedDaySet() map[DayKey]struct{} {
	out := make(map[DayKey]struct{}, len(s.Days))
	for _, dh := range s.Days {
		out[dh.Day] = struct{}{}
	}
	return out
}

// JustificationByDay indexes the month's justifications by date.
func (s MonthlySummary) JustificationByDay() map[DayKey]justification.Type {
	out := make(map[DayKey]justification.Type, len(s.Justifications))
	for _, j := range s.Justifications {
		out[DayKeyFromDate(j.Date)] = j.Type
	}
	return out
}

// DayStatusKind classifies a calendar day for display.
type DayStatusKind string

const (
	StatusWorked    DayStatusKind = "worked"
	StatusAbsence   DayStatusKind = "absence"
	StatusJustified DayStatusKind = "justified"
	StatusWeekend   DayStatusKind = "weekend"
	StatusNoData    DayStatusKind = "no_data"
)

type DayStatus struct {
	Day               DayKey
	Kind              DayStatusKind
	JustificationType *justification.Type // set when Kind is StatusJustified
}
