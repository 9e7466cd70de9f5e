package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/justification"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/punch"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	db database.Transactor
	punch.PunchRepository
	justification.JustificationRepository
	employee.EmployeeRepository
	registry *tracking.Registry
	location *time.Location
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewAttendanceService(
	db database.Transactor,
	punchRepo punch.PunchRepository,
	justificationRepo justification.JustificationRepository,
	employeeRepo employee.EmployeeRepository,
	registry *tracking.Registry,
	location *time.Location,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return newAttendanceService(db, punchRepo, justificationRepo, employeeRepo, registry, location, m, time.Now)
}

func newAttendanceService(
	db database.Transactor,
	punchRepo punch.PunchRepository,
	justificationRepo justification.JustificationRepository,
	employeeRepo employee.EmployeeRepository,
	registry *tracking.Registry,
	location *time.Location,
	m *metrics.Metrics,
	now func() time.Time,
) *AttendanceServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		db:                      db,
		PunchRepository:         punchRepo,
		JustificationRepository: justificationRepo,
		EmployeeRepository:      employeeRepo,
		registry:                registry,
		location:                location,
		metrics:                 m,
		now:                     now,
	}
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, req attendance.SummaryRequest) (attendance.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	month, err := attendance.ParseMonth(req.Month)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	started := time.Now()
	summary, emp, err := s.summarizeMonth(ctx, req.EmployeeID, month)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	s.metrics.SummaryDuration.Observe(time.Since(started).Seconds())

	resp := s.toSummaryResponse(summary)
	resp.EmployeeName = &emp.FullName
	return resp, nil
}

// GetDayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetDayStatus(ctx context.Context, req attendance.DayStatusRequest) (attendance.DayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayStatusResponse{}, err
	}

	day, err := attendance.ParseDayKey(req.Date)
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	var (
		events         []punch.Event
		justifications []justification.Justification
	)
	err = s.db.WithinSnapshot(ctx, func(ctx context.Context) error {
		_, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		start, end := day.Bounds(s.location)
		events, err = s.PunchRepository.ListByEmployeeInRange(ctx, req.EmployeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list punch events: %w", err)
		}

		justifications, err = s.JustificationRepository.ListByEmployeeInRange(ctx, req.EmployeeID, day.Time(), day.Time())
		if err != nil {
			return fmt.Errorf("failed to list justifications: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.DayStatusResponse{}, err
	}

	worked := make(map[attendance.DayKey]struct{})
	for _, e := range events {
		if attendance.DayKeyOf(e.Timestamp, s.location) == day {
			worked[day] = struct{}{}
			break
		}
	}

	justified := make(map[attendance.DayKey]justification.Type)
	if len(justifications) > 0 {
		justified[day] = justifications[0].Type
		if len(justifications) > 1 {
			s.warnDuplicateJustifications(req.EmployeeID, []attendance.DayKey{day})
		}
	}

	status := ResolveDayStatus(day, worked, justified, s.today())
	return toDayStatusResponse(status), nil
}

// GetCalendar implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCalendar(ctx context.Context, req attendance.CalendarRequest) (attendance.CalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CalendarResponse{}, err
	}

	month, err := attendance.ParseMonth(req.Month)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	summary, _, err := s.summarizeMonth(ctx, req.EmployeeID, month)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	resp := attendance.CalendarResponse{
		EmployeeID: req.EmployeeID,
		Month:      month.String(),
		Today:      summary.Today.String(),
		WorkedDays: make([]string, 0, len(summary.Days)),
	}
	for _, status := range ProjectCalendar(summary) {
		resp.Days = append(resp.Days, toDayStatusResponse(status))
	}
	for _, dh := range summary.Days {
		resp.WorkedDays = append(resp.WorkedDays, dh.Day.String())
	}

	return resp, nil
}

// summarizeMonth loads the month inside one snapshot and aggregates it.
func (s *AttendanceServiceImpl) summarizeMonth(ctx context.Context, employeeID string, month attendance.Month) (attendance.MonthlySummary, employee.Employee, error) {
	var (
		emp            employee.Employee
		events         []punch.Event
		justifications []justification.Justification
	)

	err := s.db.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		emp, err = s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}

		start, end := month.Range(s.location)
		events, err = s.PunchRepository.ListByEmployeeInRange(ctx, employeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to list punch events: %w", err)
		}

		justifications, err = s.JustificationRepository.ListByEmployeeInRange(ctx, employeeID, month.FirstDay().Time(), month.LastDay().Time())
		if err != nil {
			return fmt.Errorf("failed to list justifications: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.MonthlySummary{}, employee.Employee{}, err
	}

	summary := Summarize(SummaryInput{
		EmployeeID:     employeeID,
		Month:          month,
		Events:         events,
		Justifications: justifications,
		Today:          s.today(),
		Location:       s.location,
	})

	s.metrics.SummariesComputed.Inc()
	if len(summary.DuplicateJustificationDays) > 0 {
		s.warnDuplicateJustifications(employeeID, summary.DuplicateJustificationDays)
	}
	if summary.SuspectIntervals > 0 {
		s.metrics.SuspectIntervals.Add(float64(summary.SuspectIntervals))
		slog.Warn("Work intervals with non-positive duration",
			"employee_id", employeeID,
			"month", month.String(),
			"count", summary.SuspectIntervals,
		)
	}

	return summary, emp, nil
}

func (s *AttendanceServiceImpl) warnDuplicateJustifications(employeeID string, days []attendance.DayKey) {
	s.metrics.DuplicateJustifications.Add(float64(len(days)))
	slog.Warn("More than one justification for a day, keeping the first",
		"employee_id", employeeID,
		"days", days,
	)
}

func (s *AttendanceServiceImpl) today() attendance.DayKey {
	return attendance.DayKeyOf(s.now(), s.location)
}

func (s *AttendanceServiceImpl) kindLabel(mode *tracking.Mode, kind tracking.Kind) string {
	if mode != nil {
		if label, err := s.registry.Label(*mode, kind); err == nil {
			return label
		}
	}
	label, err := s.registry.Label(tracking.ModeLegacy, kind)
	if err != nil {
		return string(kind)
	}
	return label
}

func (s *AttendanceServiceImpl) toSummaryResponse(summary attendance.MonthlySummary) attendance.MonthlySummaryResponse {
	resp := attendance.MonthlySummaryResponse{
		EmployeeID:           summary.EmployeeID,
		Month:                summary.Month.String(),
		TotalHours:           RoundHours(summary.TotalHours),
		UnroundedTotalHours:  summary.TotalHours,
		WorkedDays:           summary.WorkedDays,
		BusinessDays:         summary.BusinessDays,
		Absences:             summary.Absences,
		JustificationCount:   summary.JustificationCount,
		JustificationsByType: make(map[string]int, len(summary.JustificationsByType)),
		AverageHoursPerDay:   RoundHours(summary.AverageHoursPerDay),
		PerDayHours:          make(map[string]float64, len(summary.Days)),
		PerDayDetails:        make(map[string][]attendance.ProjectHoursResponse, len(summary.Days)),
		PerDayRawEvents:      make(map[string][]attendance.RawEventResponse, len(summary.Days)),
		Justifications:       make([]attendance.JustificationEntry, 0, len(summary.Justifications)),
		SuspectIntervals:     summary.SuspectIntervals,
	}

	for t, n := range summary.JustificationsByType {
		resp.JustificationsByType[string(t)] = n
	}

	for _, dh := range summary.Days {
		key := dh.Day.String()
		resp.PerDayHours[key] = RoundHours(dh.Hours)

		details := make([]attendance.ProjectHoursResponse, 0, len(dh.Projects))
		for _, ph := range dh.Projects {
			details = append(details, s.toProjectHoursResponse(ph))
		}
		resp.PerDayDetails[key] = details

		raw := make([]attendance.RawEventResponse, 0, len(dh.Events))
		for _, e := range dh.Events {
			raw = append(raw, s.toRawEventResponse(e))
		}
		resp.PerDayRawEvents[key] = raw
	}

	for _, j := range summary.Justifications {
		resp.Justifications = append(resp.Justifications, attendance.JustificationEntry{
			ID:        j.ID,
			Date:      attendance.DayKeyFromDate(j.Date).String(),
			Type:      string(j.Type),
			TypeLabel: j.Type.Label(),
			Notes:     j.Notes,
		})
	}

	for _, d := range summary.DuplicateJustificationDays {
		resp.DuplicateJustificationDays = append(resp.DuplicateJustificationDays, d.String())
	}

	return resp
}

func (s *AttendanceServiceImpl) toProjectHoursResponse(ph attendance.ProjectHours) attendance.ProjectHoursResponse {
	resp := attendance.ProjectHoursResponse{
		ProjectID:   ph.ProjectID,
		ProjectName: ph.ProjectName,
		Hours:       RoundHours(ph.Hours),
		Intervals:   make([]attendance.WorkIntervalResponse, 0, len(ph.Intervals)),
	}
	for _, iv := range ph.Intervals {
		resp.Intervals = append(resp.Intervals, attendance.WorkIntervalResponse{
			EntryKind: string(iv.EntryKind),
			ExitKind:  string(iv.ExitKind),
			Entry:     iv.Entry.In(s.location).Format(time.RFC3339),
			Exit:      iv.Exit.In(s.location).Format(time.RFC3339),
			Hours:     RoundHours(iv.Hours),
			Suspect:   iv.Suspect,
		})
	}
	if ph.Unpaired != nil {
		raw := s.toRawEventResponse(*ph.Unpaired)
		resp.UnpairedEvent = &raw
	}
	return resp
}

func (s *AttendanceServiceImpl) toRawEventResponse(e punch.Event) attendance.RawEventResponse {
	name := attendance.UnknownProjectName
	if e.ProjectName != nil && *e.ProjectName != "" {
		name = *e.ProjectName
	}
	return attendance.RawEventResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		ProjectName: name,
		Kind:        string(e.Kind),
		KindLabel:   s.kindLabel(e.TrackingMode, e.Kind),
		Timestamp:   e.Timestamp.In(s.location).Format(time.RFC3339),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Notes:       e.Notes,
	}
}

func toDayStatusResponse(status attendance.DayStatus) attendance.DayStatusResponse {
	resp := attendance.DayStatusResponse{
		Date:   status.Day.String(),
		Status: string(status.Kind),
	}
	if status.JustificationType != nil {
		t := string(*status.JustificationType)
		label := status.JustificationType.Label()
		resp.JustificationType = &t
		resp.JustificationLabel = &label
	}
	return resp
}
