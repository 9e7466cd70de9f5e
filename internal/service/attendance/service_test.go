package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "0190a000-0000-7000-8000-0000000000e1"

// ===== fakes =====

type fakeTransactor struct {
	snapshots int
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTransactor) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	f.snapshots++
	return fn(ctx)
}

type fakePunchRepo struct {
	punch.PunchRepository
	events []punch.Event
}

func (f *fakePunchRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]punch.Event, error) {
	var out []punch.Event
	for _, e := range f.events {
		if e.EmployeeID == employeeID && !e.Timestamp.Before(start) && e.Timestamp.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeJustificationRepo struct {
	justification.JustificationRepository
	records []justification.Justification
}

func (f *fakeJustificationRepo) ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]justification.Justification, error) {
	var out []justification.Justification
	for _, j := range f.records {
		if j.EmployeeID == employeeID && !j.Date.Before(from) && !j.Date.After(to) {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

type serviceFixture struct {
	svc     *AttendanceServiceImpl
	tx      *fakeTransactor
	metrics *metrics.Metrics
}

func newServiceFixture(t *testing.T, now string, events []punch.Event, records []justification.Justification) serviceFixture {
	t.Helper()
	for i := range events {
		events[i].EmployeeID = testEmployeeID
		mode := tracking.ModeLegacy
		events[i].TrackingMode = &mode
	}
	for i := range records {
		records[i].EmployeeID = testEmployeeID
	}

	tx := &fakeTransactor{}
	m := metrics.New(prometheus.NewRegistry())
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {ID: testEmployeeID, FullName: "Ana Souza", IsActive: true},
	}}
	clock := at(t, now)

	svc := newAttendanceService(
		tx,
		&fakePunchRepo{events: events},
		&fakeJustificationRepo{records: records},
		employees,
		tracking.Default(),
		brt,
		m,
		func() time.Time { return clock },
	)
	return serviceFixture{svc: svc, tx: tx, metrics: m}
}

// ===== tests =====

func TestAttendanceService_Summarize(t *testing.T) {
	f := newServiceFixture(t, "2024-03-06 10:00",
		append(workDay(t, "2024-03-04"), newEvent(t, "late", projectA, tracking.KindEntry, "2024-03-04 14:00")),
		[]justification.Justification{
			newJustification("j1", "2024-03-05", justification.TypeMedicalLeave),
		},
	)

	resp, err := f.svc.Summarize(context.Background(), attendance.SummaryRequest{
		EmployeeID: testEmployeeID,
		Month:      "2024-03",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.snapshots)
	assert.Equal(t, "2024-03", resp.Month)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Ana Souza", *resp.EmployeeName)
	assert.Equal(t, 1, resp.WorkedDays)
	assert.Equal(t, 21, resp.BusinessDays)
	assert.Equal(t, 1, resp.Absences)
	assert.Equal(t, 4.0, resp.TotalHours)
	assert.Equal(t, map[string]int{"MEDICAL_LEAVE": 1}, resp.JustificationsByType)
	assert.Equal(t, map[string]float64{"2024-03-04": 4.0}, resp.PerDayHours)

	details := resp.PerDayDetails["2024-03-04"]
	require.Len(t, details, 1)
	assert.Equal(t, "Project a", details[0].ProjectName)
	require.Len(t, details[0].Intervals, 1)
	assert.Equal(t, "2024-03-04T08:00:00-03:00", details[0].Intervals[0].Entry)
	require.NotNil(t, details[0].UnpairedEvent)
	assert.Equal(t, "late", details[0].UnpairedEvent.ID)

	raw := resp.PerDayRawEvents["2024-03-04"]
	require.Len(t, raw, 3)
	assert.Equal(t, "Entry", raw[0].KindLabel)

	require.Len(t, resp.Justifications, 1)
	assert.Equal(t, "2024-03-05", resp.Justifications[0].Date)
	assert.Equal(t, "Medical leave", resp.Justifications[0].TypeLabel)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SummariesComputed))
}

func TestAttendanceService_Summarize_RoundsAtBoundary(t *testing.T) {
	events := []punch.Event{
		newEvent(t, "a1", projectA, tracking.KindEntry, "2024-03-04 08:00"),
		newEvent(t, "a2", projectA, tracking.KindExit, "2024-03-04 08:20"),
	}
	f := newServiceFixture(t, "2024-03-05 09:00", events, nil)

	resp, err := f.svc.Summarize(context.Background(), attendance.SummaryRequest{EmployeeID: testEmployeeID, Month: "2024-03"})
	require.NoError(t, err)

	assert.Equal(t, 0.33, resp.TotalHours)
	assert.InDelta(t, 1.0/3, resp.UnroundedTotalHours, 1e-9)
	assert.Equal(t, 0.33, resp.AverageHoursPerDay)
	assert.Equal(t, 0.33, resp.PerDayHours["2024-03-04"])
}

func TestAttendanceService_Summarize_DuplicateJustification(t *testing.T) {
	f := newServiceFixture(t, "2024-03-06 10:00", nil, []justification.Justification{
		newJustification("j1", "2024-03-05", justification.TypeTimeBank),
		newJustification("j2", "2024-03-05", justification.TypeVacation),
	})

	resp, err := f.svc.Summarize(context.Background(), attendance.SummaryRequest{EmployeeID: testEmployeeID, Month: "2024-03"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.JustificationCount)
	assert.Equal(t, []string{"2024-03-05"}, resp.DuplicateJustificationDays)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.DuplicateJustifications))
}

func TestAttendanceService_Summarize_InvalidInput(t *testing.T) {
	f := newServiceFixture(t, "2024-03-06 10:00", nil, nil)

	_, err := f.svc.Summarize(context.Background(), attendance.SummaryRequest{EmployeeID: testEmployeeID, Month: "2024-3"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "month")

	_, err = f.svc.Summarize(context.Background(), attendance.SummaryRequest{EmployeeID: "-1", Month: "2024-03"})
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "employee_id")

	assert.Zero(t, f.tx.snapshots)
}

func TestAttendanceService_Summarize_UnknownEmployee(t *testing.T) {
	f := newServiceFixture(t, "2024-03-06 10:00", nil, nil)

	_, err := f.svc.Summarize(context.Background(), attendance.SummaryRequest{
		EmployeeID: "0190a000-0000-7000-8000-0000000000ff",
		Month:      "2024-03",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_GetDayStatus(t *testing.T) {
	f := newServiceFixture(t, "2024-03-12 10:00",
		append(workDay(t, "2024-03-04"), workDay(t, "2024-03-09")...),
		[]justification.Justification{
			newJustification("j1", "2024-03-05", justification.TypeMedicalLeave),
		},
	)

	cases := map[string]string{
		"2024-03-04": "worked",
		"2024-03-05": "justified",
		"2024-03-06": "absence",
		"2024-03-09": "weekend",
		"2024-03-12": "no_data",
		"2024-03-20": "no_data",
	}
	for date, want := range cases {
		resp, err := f.svc.GetDayStatus(context.Background(), attendance.DayStatusRequest{EmployeeID: testEmployeeID, Date: date})
		require.NoError(t, err, date)
		assert.Equal(t, want, resp.Status, date)
		assert.Equal(t, date, resp.Date)
	}

	resp, err := f.svc.GetDayStatus(context.Background(), attendance.DayStatusRequest{EmployeeID: testEmployeeID, Date: "2024-03-05"})
	require.NoError(t, err)
	require.NotNil(t, resp.JustificationType)
	assert.Equal(t, "MEDICAL_LEAVE", *resp.JustificationType)
	assert.Equal(t, "Medical leave", *resp.JustificationLabel)
}

func TestAttendanceService_GetCalendar(t *testing.T) {
	f := newServiceFixture(t, "2024-03-07 10:00", workDay(t, "2024-03-04"), nil)

	resp, err := f.svc.GetCalendar(context.Background(), attendance.CalendarRequest{EmployeeID: testEmployeeID, Month: "2024-03"})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-07", resp.Today)
	assert.Len(t, resp.Days, 31)
	assert.Equal(t, []string{"2024-03-04"}, resp.WorkedDays)
	assert.Equal(t, "worked", resp.Days[3].Status)
	assert.Equal(t, "weekend", resp.Days[1].Status)
}
