package attendance

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
)

// ComputeDailyHours pairs the punches of one local day. Punches outside day
// are ignored. Within a project, punches are sorted by timestamp and consumed
// two at a time; a trailing odd punch is reported as Unpaired and adds no hours.
func ComputeDailyHours(events []punch.Event, day attendance.DayKey, loc *time.Location) attendance.DailyHours {
	dh := attendance.DailyHours{Day: day}

	byProject := make(map[string][]punch.Event)
	for _, e := range events {
		if attendance.DayKeyOf(e.Timestamp, loc) != day {
			continue
		}
		byProject[e.ProjectID] = append(byProject[e.ProjectID], e)
		dh.Events = append(dh.Events, e)
	}
	sortEvents(dh.Events)

	for _, projectID := range slices.Sorted(maps.Keys(byProject)) {
		ph := pairProject(projectID, byProject[projectID])
		dh.Projects = append(dh.Projects, ph)
		dh.Hours += ph.Hours
	}

	return dh
}

func pairProject(projectID string, events []punch.Event) attendance.ProjectHours {
	sortEvents(events)

	ph := attendance.ProjectHours{
		ProjectID:   projectID,
		ProjectName: projectName(events),
	}

	for i := 0; i+1 < len(events); i += 2 {
		entry, exit := events[i], events[i+1]
		hours := exit.Timestamp.Sub(entry.Timestamp).Hours()
		ph.Intervals = append(ph.Intervals, attendance.WorkInterval{
			ProjectID:   projectID,
			ProjectName: ph.ProjectName,
			EntryKind:   entry.Kind,
			ExitKind:    exit.Kind,
			Entry:       entry.Timestamp,
			Exit:        exit.Timestamp,
			Hours:       hours,
			Suspect:     hours <= 0,
		})
		ph.Hours += hours
	}

	if len(events)%2 == 1 {
		last := events[len(events)-1]
		ph.Unpaired = &last
	}

	return ph
}

// sortEvents orders by timestamp, then id, so equal timestamps pair the same
// way whatever order the store returned them in.
func sortEvents(events []punch.Event) {
	slices.SortStableFunc(events, func(a, b punch.Event) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func projectName(events []punch.Event) string {
	for _, e := range events {
		if e.ProjectName != nil && *e.ProjectName != "" {
			return *e.ProjectName
		}
	}
	return attendance.UnknownProjectName
}
