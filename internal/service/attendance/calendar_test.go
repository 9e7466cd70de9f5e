package attendance

import (
	"testing"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDayStatus_Precedence(t *testing.T) {
	worked := map[attendance.DayKey]struct{}{
		"2024-03-04": {}, // Monday, also justified
		"2024-03-06": {},
		"2024-03-09": {}, // Saturday with punches
	}
	justified := map[attendance.DayKey]justification.Type{
		"2024-03-04": justification.TypeAuthorizedLeave,
		"2024-03-10": justification.TypeVacation, // Sunday
		"2024-03-15": justification.TypeMedicalLeave,
	}
	today := attendance.DayKey("2024-03-12")

	cases := []struct {
		day  attendance.DayKey
		want attendance.DayStatusKind
	}{
		{"2024-03-09", attendance.StatusWeekend},   // weekend outranks worked
		{"2024-03-10", attendance.StatusWeekend},   // weekend outranks justified
		{"2024-03-04", attendance.StatusJustified}, // justified outranks worked
		{"2024-03-06", attendance.StatusWorked},
		{"2024-03-07", attendance.StatusAbsence},
		{"2024-03-12", attendance.StatusNoData}, // today without punches
		{"2024-03-13", attendance.StatusNoData},
		{"2024-03-15", attendance.StatusJustified}, // future justification
	}
	for _, c := range cases {
		t.Run(c.day.String(), func(t *testing.T) {
			got := ResolveDayStatus(c.day, worked, justified, today)
			assert.Equal(t, c.day, got.Day)
			assert.Equal(t, c.want, got.Kind)
			if c.want == attendance.StatusJustified {
				require.NotNil(t, got.JustificationType)
				assert.Equal(t, justified[c.day], *got.JustificationType)
			} else {
				assert.Nil(t, got.JustificationType)
			}
		})
	}
}

func TestResolveDayStatus_NilMaps(t *testing.T) {
	got := ResolveDayStatus("2024-03-04", nil, nil, "2024-03-05")
	assert.Equal(t, attendance.StatusAbsence, got.Kind)
}

func TestProjectCalendar_CoversWholeMonth(t *testing.T) {
	s := Summarize(SummaryInput{
		Month:  march2024,
		Events: workDay(t, "2024-03-04"),
		Justifications: []justification.Justification{
			newJustification("j1", "2024-03-05", justification.TypeMedicalLeave),
		},
		Today:    "2024-03-07",
		Location: brt,
	})

	days := ProjectCalendar(s)

	require.Len(t, days, 31)
	assert.Equal(t, attendance.DayKey("2024-03-01"), days[0].Day)
	assert.Equal(t, attendance.DayKey("2024-03-31"), days[30].Day)

	byDay := make(map[attendance.DayKey]attendance.DayStatusKind, len(days))
	for _, d := range days {
		byDay[d.Day] = d.Kind
	}
	assert.Equal(t, attendance.StatusAbsence, byDay["2024-03-01"])
	assert.Equal(t, attendance.StatusWeekend, byDay["2024-03-02"])
	assert.Equal(t, attendance.StatusWorked, byDay["2024-03-04"])
	assert.Equal(t, attendance.StatusJustified, byDay["2024-03-05"])
	assert.Equal(t, attendance.StatusAbsence, byDay["2024-03-06"])
	assert.Equal(t, attendance.StatusNoData, byDay["2024-03-07"])
	assert.Equal(t, attendance.StatusNoData, byDay["2024-03-29"])

	absences := 0
	for _, d := range days {
		if d.Kind == attendance.StatusAbsence {
			absences++
		}
	}
	assert.Equal(t, s.Absences, absences)
}
