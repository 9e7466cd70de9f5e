package attendance

import (
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
)

// ResolveDayStatus classifies a day for display. The first matching rule wins:
// weekend, justified, worked, absence (strictly before today), no data.
//
// This ordering differs from absence counting in Summarize on purpose: a
// justified day with punches shows as justified here but counts as worked there.
func ResolveDayStatus(
	day attendance.DayKey,
	worked map[attendance.DayKey]struct{},
	justified map[attendance.DayKey]justification.Type,
	today attendance.DayKey,
) attendance.DayStatus {
	status := attendance.DayStatus{Day: day}

	if day.IsWeekend() {
		status.Kind = attendance.StatusWeekend
		return status
	}

	if t, ok := justified[day]; ok {
		status.Kind = attendance.StatusJustified
		status.JustificationType = &t
		return status
	}

	if _, ok := worked[day]; ok {
		status.Kind = attendance.StatusWorked
		return status
	}

	if day.Before(today) {
		status.Kind = attendance.StatusAbsence
		return status
	}

	status.Kind = attendance.StatusNoData
	return status
}

// ProjectCalendar resolves every day of the summary's month.
func ProjectCalendar(s attendance.MonthlySummary) []attendance.DayStatus {
	worked := s.WorkedDaySet()
	justified := s.JustificationByDay()

	days := s.Month.Days()
	out := make([]attendance.DayStatus, 0, len(days))
	for _, day := range days {
		out = append(out, ResolveDayStatus(day, worked, justified, s.Today))
	}
	return out
}
